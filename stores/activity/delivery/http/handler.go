package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/delivery"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/activity"
)

type handler struct {
	activity activity.Usecase
}

// New registers the per-item event and offer feeds
func New(e *echo.Echo, uc activity.Usecase) {
	h := &handler{uc}

	g := e.Group("/collectibles/:chain/:contract/:identifier")
	g.GET("/events", h.events)
	g.GET("/offers", h.offers)
}

type itemParams struct {
	Chain      domain.ChainName `param:"chain"`
	Contract   domain.Address   `param:"contract"`
	Identifier domain.TokenId   `param:"identifier"`
}

func (h *handler) events(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &itemParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.activity.History(ctx, p.Chain, p.Contract.ToLower(), p.Identifier); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) offers(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &itemParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.activity.Offers(ctx, p.Chain, p.Contract.ToLower(), p.Identifier); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
