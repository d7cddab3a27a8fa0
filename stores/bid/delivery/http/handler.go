package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/delivery"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/bid"
)

type handler struct {
	bid bid.Usecase
}

// New registers the bid book endpoints. Placing a bid requires a
// connected wallet; reading the book does not.
func New(e *echo.Echo, uc bid.Usecase, authMiddleware echo.MiddlewareFunc) {
	h := &handler{uc}

	g := e.Group("/collectibles/:chain/:contract/:identifier/bids")
	g.GET("", h.list)
	g.POST("", h.place, authMiddleware)
}

type itemParams struct {
	Chain      domain.ChainName `param:"chain"`
	Contract   domain.Address   `param:"contract"`
	Identifier domain.TokenId   `param:"identifier"`
}

func (h *handler) place(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type payload struct {
		itemParams
		Amount string `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	bidder := c.Get("address").(domain.Address)
	itemId := bid.ItemId(p.Chain, p.Contract, p.Identifier)

	res, err := h.bid.Place(ctx, itemId, bidder, p.Amount)
	if err == domain.ErrInvalidAmount || err == domain.ErrInvalidAddress {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := &itemParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.bid.List(ctx, bid.ItemId(p.Chain, p.Contract, p.Identifier)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
