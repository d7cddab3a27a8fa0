package bid

import (
	"time"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
)

// Bid is one offer placed on an item. Bids live in cache only and
// expire with it; nothing is written to a persistent store.
type Bid struct {
	ItemId   string         `json:"itemId"`
	Bidder   domain.Address `json:"bidder"`
	Amount   string         `json:"amount"`
	PlacedAt time.Time      `json:"placedAt"`
}

// ItemId joins the addressable parts of an item into a bid-book key
func ItemId(chain domain.ChainName, contract domain.Address, identifier domain.TokenId) string {
	return string(chain) + ":" + contract.ToLowerStr() + ":" + identifier.String()
}

type Usecase interface {
	Place(c bCtx.Ctx, itemId string, bidder domain.Address, amount string) (*Bid, error)
	List(c bCtx.Ctx, itemId string) ([]Bid, error)
}
