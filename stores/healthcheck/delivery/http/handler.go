package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/delivery"
	"github.com/parodee/goapi/domain/healthcheck"
)

type handler struct {
	healthcheck healthcheck.Usecase
}

func New(e *echo.Echo, uc healthcheck.Usecase) {
	h := &handler{uc}
	e.GET("/health", h.check)
}

func (h *handler) check(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.healthcheck.Check(ctx))
}
