package wallet

import (
	"time"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
)

type WalletId string

const (
	WalletMetamask      WalletId = "metamask"
	WalletWalletConnect WalletId = "walletconnect"
	WalletCoinbase      WalletId = "coinbase"
	WalletPhantom       WalletId = "phantom"
	WalletOkx           WalletId = "okx"
)

var supported = []WalletId{
	WalletMetamask,
	WalletWalletConnect,
	WalletCoinbase,
	WalletPhantom,
	WalletOkx,
}

func SupportedWallets() []WalletId {
	return supported
}

func (w WalletId) IsSupported() bool {
	for _, s := range supported {
		if w == s {
			return true
		}
	}
	return false
}

// Session is one parsed wallet connection
type Session struct {
	Address   domain.Address `json:"address"`
	Wallet    WalletId       `json:"wallet"`
	SessionId string         `json:"sessionId"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// ConnectResult carries the bearer token handed to the client
type ConnectResult struct {
	Token   string         `json:"token"`
	Address domain.Address `json:"address"`
	Wallet  WalletId       `json:"wallet"`
}

// Status mirrors what the storefront needs to render the wallet button
type Status struct {
	IsConnected bool           `json:"isConnected"`
	Address     domain.Address `json:"address,omitempty"`
	Wallet      WalletId       `json:"wallet,omitempty"`
}

type Usecase interface {
	Connect(c bCtx.Ctx, walletId WalletId, address domain.Address) (*ConnectResult, error)
	Parse(c bCtx.Ctx, token string) (*Session, error)
	Disconnect(c bCtx.Ctx, token string) error
	Status(c bCtx.Ctx, token string) *Status
}
