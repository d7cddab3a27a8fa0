package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/metrics"
	"github.com/parodee/goapi/base/validator"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/wallet"
	"github.com/parodee/goapi/service/cache"
)

type WalletUsecaseCfg struct {
	JwtSecret string
	TokenTtl  time.Duration
	// Cache holds revoked session ids until the token would have
	// expired anyway
	Cache cache.Service
}

type impl struct {
	jwtSecret []byte
	tokenTtl  time.Duration
	cache     cache.Service
	mt        metrics.Service
}

func New(cfg *WalletUsecaseCfg) wallet.Usecase {
	tokenTtl := cfg.TokenTtl
	if tokenTtl == 0 {
		tokenTtl = 24 * time.Hour
	}
	return &impl{
		jwtSecret: []byte(cfg.JwtSecret),
		tokenTtl:  tokenTtl,
		cache:     cfg.Cache,
		mt:        metrics.New("wallet"),
	}
}

func (im *impl) Connect(c bCtx.Ctx, walletId wallet.WalletId, address domain.Address) (*wallet.ConnectResult, error) {
	defer im.mt.BumpTime("connect.time").End()

	if !walletId.IsSupported() {
		return nil, domain.ErrUnsupportedWallet
	}
	if !validator.IsValidAddress(string(address)) {
		return nil, domain.ErrInvalidAddress
	}

	claims := wallet.JwtCustomClaims{
		Address: address.ToLowerStr(),
		Wallet:  string(walletId),
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: time.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return nil, err
	}

	im.mt.BumpSum("connect", 1, "wallet", string(walletId))
	return &wallet.ConnectResult{
		Token:   ss,
		Address: address.ToLower(),
		Wallet:  walletId,
	}, nil
}

func (im *impl) Parse(c bCtx.Ctx, str string) (*wallet.Session, error) {
	claims := &wallet.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(str, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if im.isRevoked(c, claims.Id) {
		return nil, domain.ErrInvalidToken
	}

	return &wallet.Session{
		Address:   domain.Address(claims.Address),
		Wallet:    wallet.WalletId(claims.Wallet),
		SessionId: claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

func (im *impl) Disconnect(c bCtx.Ctx, str string) error {
	defer im.mt.BumpTime("disconnect.time").End()

	session, err := im.Parse(c, str)
	if err != nil {
		return err
	}

	revoked := true
	if err := im.cache.Set(c, session.SessionId, &revoked); err != nil {
		c.WithField("err", err).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Status(c bCtx.Ctx, str string) *wallet.Status {
	if str == "" {
		return &wallet.Status{}
	}
	session, err := im.Parse(c, str)
	if err != nil {
		return &wallet.Status{}
	}
	return &wallet.Status{
		IsConnected: true,
		Address:     session.Address,
		Wallet:      session.Wallet,
	}
}

func (im *impl) isRevoked(c bCtx.Ctx, sessionId string) bool {
	revoked := false
	err := im.cache.Get(c, sessionId, &revoked)
	return err == nil && revoked
}
