package activity

import (
	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
)

// History is the event feed for one item plus its best-price summary
type History struct {
	Events    []DisplayEvent `json:"events"`
	BestPrice string         `json:"bestPrice"`
}

type Usecase interface {
	History(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*History, error)
	Offers(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) ([]DisplayEvent, error)
}
