package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain/wallet"
)

// WalletMiddleware gates routes behind a connected wallet session
type WalletMiddleware struct {
	wallet wallet.Usecase
}

func New(uc wallet.Usecase) *WalletMiddleware {
	return &WalletMiddleware{wallet: uc}
}

func (m *WalletMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateToken)
}

func (m *WalletMiddleware) validateToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	session, err := m.wallet.Parse(ctx, key)
	if err != nil {
		ctx.WithField("err", err).Error("wallet.Parse failed")
		return false, err
	}
	c.Set("address", session.Address)
	c.Set("wallet", session.Wallet)
	return true, nil
}
