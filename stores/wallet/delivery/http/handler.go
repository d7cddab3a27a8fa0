package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/delivery"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/wallet"
)

type handler struct {
	wallet wallet.Usecase
}

// New registers the wallet session endpoints
func New(e *echo.Echo, uc wallet.Usecase) {
	h := &handler{uc}

	g := e.Group("/wallet")
	g.POST("/connect", h.connect)
	g.POST("/disconnect", h.disconnect)
	g.GET("/status", h.status)
	g.GET("/wallets", h.wallets)
}

func (h *handler) connect(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type payload struct {
		WalletId string `json:"walletId" validate:"required"`
		Address  string `json:"address" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.wallet.Connect(ctx, wallet.WalletId(p.WalletId), domain.Address(p.Address))
	if err == domain.ErrUnsupportedWallet || err == domain.ErrInvalidAddress {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) disconnect(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	token := bearerToken(c)
	if token == "" {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrInvalidToken)
	}

	if err := h.wallet.Disconnect(ctx, token); err == domain.ErrInvalidToken {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "disconnected")
}

func (h *handler) status(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.wallet.Status(ctx, bearerToken(c)))
}

func (h *handler) wallets(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, wallet.SupportedWallets())
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(auth, "Bearer ")
}
