package usecase

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/metrics"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/bid"
	"github.com/parodee/goapi/service/cache"
)

type BidUsecaseCfg struct {
	Cache cache.Service
}

type impl struct {
	cache cache.Service
	mu    sync.Mutex
	mt    metrics.Service
}

func New(cfg *BidUsecaseCfg) bid.Usecase {
	return &impl{
		cache: cfg.Cache,
		mt:    metrics.New("bid"),
	}
}

func (im *impl) Place(c bCtx.Ctx, itemId string, bidder domain.Address, amount string) (*bid.Bid, error) {
	defer im.mt.BumpTime("place.time").End()

	if bidder.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	b := bid.Bid{
		ItemId:   itemId,
		Bidder:   bidder.ToLower(),
		Amount:   amt.String(),
		PlacedAt: time.Now().UTC(),
	}

	// the book is read-modify-write on a shared cache entry
	im.mu.Lock()
	defer im.mu.Unlock()

	book, err := im.book(c, itemId)
	if err != nil {
		return nil, err
	}
	book = append(book, b)
	if err := im.cache.Set(c, itemId, &book); err != nil {
		c.WithField("err", err).Error("cache.Set failed")
		return nil, err
	}

	im.mt.BumpSum("placed", 1)
	return &b, nil
}

func (im *impl) List(c bCtx.Ctx, itemId string) ([]bid.Bid, error) {
	return im.book(c, itemId)
}

func (im *impl) book(c bCtx.Ctx, itemId string) ([]bid.Bid, error) {
	book := []bid.Bid{}
	err := im.cache.Get(c, itemId, &book)
	if err == cache.ErrNotFound {
		return []bid.Bid{}, nil
	} else if err != nil {
		c.WithField("err", err).Error("cache.Get failed")
		return nil, err
	}
	return book, nil
}
