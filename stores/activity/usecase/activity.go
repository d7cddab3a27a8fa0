package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	"github.com/parodee/goapi/base/metrics"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/activity"
	"github.com/parodee/goapi/service/opensea"
)

const eventFetchLimit = 20

type ActivityUsecaseCfg struct {
	Opensea opensea.Client
}

type impl struct {
	opensea opensea.Client
	mt      metrics.Service
}

func New(cfg *ActivityUsecaseCfg) activity.Usecase {
	return &impl{
		opensea: cfg.Opensea,
		mt:      metrics.New("activity"),
	}
}

// History fetches the event feed and the current best listing. Both
// fetches fail independently; the view renders whatever arrived.
func (im *impl) History(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*activity.History, error) {
	defer im.mt.BumpTime("history.time").End()

	events := []activity.MarketplaceEvent{}
	if resp, err := im.opensea.GetNftEvents(c, chain, contract, identifier, eventFetchLimit); err != nil {
		c.WithFields(log.Fields{
			"contract":   contract,
			"identifier": identifier,
			"err":        err,
		}).Warn("event fetch failed, degrading to empty feed")
		im.mt.BumpSum("history.err", 1)
	} else {
		events = resp.AssetEvents
	}

	best := ""
	if resp, err := im.opensea.GetBestListing(c, chain, contract, identifier); err == nil {
		best = listingPrice(resp)
	}
	if best == "" {
		best = activity.SummarizePrice(events)
	}

	return &activity.History{
		Events:    activity.FormatEvents(events),
		BestPrice: best,
	}, nil
}

// Offers fetches active offers and renders them as bid rows
func (im *impl) Offers(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) ([]activity.DisplayEvent, error) {
	defer im.mt.BumpTime("offers.time").End()

	resp, err := im.opensea.GetNftOffers(c, chain, contract, identifier)
	if err != nil {
		c.WithFields(log.Fields{
			"contract":   contract,
			"identifier": identifier,
			"err":        err,
		}).Warn("offer fetch failed, degrading to empty list")
		im.mt.BumpSum("offers.err", 1)
		return []activity.DisplayEvent{}, nil
	}

	events := make([]activity.MarketplaceEvent, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		o := o
		maker := string(o.Maker.Address)
		events = append(events, activity.MarketplaceEvent{
			EventType:      "offer_entered",
			EventTimestamp: o.ListingTime,
			Maker:          &maker,
			Price:          &o.CurrentPrice,
		})
	}
	return activity.FormatEvents(events), nil
}

// listingPrice renders the best listing's current price, empty when
// the payload is unusable
func listingPrice(resp *opensea.BestListingResp) string {
	value := resp.Price.Current.Value
	if value == "" {
		return ""
	}
	v, err := decimal.NewFromString(value.String())
	if err != nil {
		return ""
	}
	amount := v.Shift(-resp.Price.Current.Decimals)
	symbol := resp.Price.Current.Currency
	if strings.EqualFold(symbol, "WETH") {
		symbol = "ETH"
	}
	if symbol == "" {
		return amount.String()
	}
	return amount.String() + " " + symbol
}
