package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/delivery"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
)

type handler struct {
	collectible collectible.Usecase
}

// New registers the storefront listing endpoints. cached wraps the
// read-heavy routes with the response cache middleware.
func New(e *echo.Echo, uc collectible.Usecase, cached echo.MiddlewareFunc) {
	h := &handler{uc}

	g := e.Group("/collectibles")
	g.GET("", h.list, cached)
	g.GET("/:chain/:contract/:identifier", h.get)

	e.GET("/collections/:slug/traits", h.traits, cached)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Slug   string `query:"slug"`
		Search string `query:"search"`
		Sort   string `query:"sort"`
		Dir    string `query:"dir"`
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
		Attrs  string `query:"attrs"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	searchParams := collectible.SearchParams{
		Slug:     p.Slug,
		Search:   p.Search,
		SortBy:   p.Sort,
		Dir:      p.Dir,
		Page:     p.Page,
		Limit:    p.Limit,
		Selected: parseAttrs(p.Attrs),
	}

	if res, err := h.collectible.List(ctx, searchParams); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Chain      domain.ChainName `param:"chain"`
		Contract   domain.Address   `param:"contract"`
		Identifier domain.TokenId   `param:"identifier"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Contract.IsEmpty() || p.Identifier == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if res, err := h.collectible.Get(ctx, p.Chain, p.Contract.ToLower(), p.Identifier); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) traits(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Slug string `param:"slug"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.collectible.Facets(ctx, p.Slug); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// parseAttrs reads Category:Value pairs joined by commas, e.g.
// attrs=Background:Blue,Background:Red,Hat:Cap
func parseAttrs(attrs string) map[string][]string {
	selected := map[string][]string{}
	for _, pair := range strings.Split(attrs, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		selected[parts[0]] = append(selected[parts[0]], parts[1])
	}
	return selected
}
