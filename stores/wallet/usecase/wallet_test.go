package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/keys"
	"github.com/parodee/goapi/domain/wallet"
	"github.com/parodee/goapi/service/cache"
	"github.com/parodee/goapi/service/cache/provider"
	"github.com/parodee/goapi/service/cache/provider/primitive"
)

const testAddress = domain.Address("0x7d2ac5d4d3811f07b52c3396201ca8aba1c51712")

type walletSuite struct {
	suite.Suite
	ctx      bCtx.Ctx
	provider provider.Provider
	uc       wallet.Usecase
}

func TestWalletSuite(t *testing.T) {
	suite.Run(t, new(walletSuite))
}

func (s *walletSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.provider = primitive.NewPrimitive("test", 1)
	s.uc = New(&WalletUsecaseCfg{
		JwtSecret: "test-secret",
		TokenTtl:  time.Hour,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxSession,
			Cache: s.provider,
		}),
	})
}

func (s *walletSuite) TestConnectAndParse() {
	res, err := s.uc.Connect(s.ctx, wallet.WalletMetamask, testAddress)
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Equal(testAddress, res.Address)

	session, err := s.uc.Parse(s.ctx, res.Token)
	s.Require().NoError(err)
	s.Equal(testAddress, session.Address)
	s.Equal(wallet.WalletMetamask, session.Wallet)
	s.NotEmpty(session.SessionId)
}

func (s *walletSuite) TestConnectUnsupportedWallet() {
	_, err := s.uc.Connect(s.ctx, "ledger", testAddress)
	s.ErrorIs(err, domain.ErrUnsupportedWallet)
}

func (s *walletSuite) TestConnectInvalidAddress() {
	_, err := s.uc.Connect(s.ctx, wallet.WalletMetamask, "not-an-address")
	s.ErrorIs(err, domain.ErrInvalidAddress)
}

func (s *walletSuite) TestParseGarbageToken() {
	_, err := s.uc.Parse(s.ctx, "garbage")
	s.ErrorIs(err, domain.ErrInvalidToken)
}

func (s *walletSuite) TestParseWrongSecret() {
	other := New(&WalletUsecaseCfg{
		JwtSecret: "other-secret",
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   "wallet",
			Cache: primitive.NewPrimitive("test", 1),
		}),
	})
	res, err := other.Connect(s.ctx, wallet.WalletMetamask, testAddress)
	s.Require().NoError(err)

	_, err = s.uc.Parse(s.ctx, res.Token)
	s.ErrorIs(err, domain.ErrInvalidToken)
}

func (s *walletSuite) TestDisconnectRevokesSession() {
	res, err := s.uc.Connect(s.ctx, wallet.WalletOkx, testAddress)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.Disconnect(s.ctx, res.Token))

	_, err = s.uc.Parse(s.ctx, res.Token)
	s.ErrorIs(err, domain.ErrInvalidToken)
}

func (s *walletSuite) TestRevocationKeyedUnderServicePrefixOnly() {
	res, err := s.uc.Connect(s.ctx, wallet.WalletMetamask, testAddress)
	s.Require().NoError(err)
	session, err := s.uc.Parse(s.ctx, res.Token)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.Disconnect(s.ctx, res.Token))

	_, _, err = s.provider.Get(s.ctx, keys.CacheKey(keys.PfxSession, session.SessionId))
	s.NoError(err, "revocation lives at session:<jti>, prefixed once by the service")
}

func (s *walletSuite) TestStatus() {
	s.False(s.uc.Status(s.ctx, "").IsConnected)
	s.False(s.uc.Status(s.ctx, "garbage").IsConnected)

	res, err := s.uc.Connect(s.ctx, wallet.WalletPhantom, testAddress)
	s.Require().NoError(err)

	status := s.uc.Status(s.ctx, res.Token)
	s.True(status.IsConnected)
	s.Equal(testAddress, status.Address)
	s.Equal(wallet.WalletPhantom, status.Wallet)
}
