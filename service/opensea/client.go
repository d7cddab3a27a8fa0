package opensea

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/activity"
	"github.com/parodee/goapi/domain/collectible"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

const (
	// SeaportProtocol is the only order protocol the storefront reads
	SeaportProtocol = "seaport"
)

type Client interface {
	GetCollectionNfts(ctx bCtx.Ctx, slug string, limit int) (*NftsResp, error)
	GetNft(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*NftResp, error)
	GetNftEvents(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId, limit int) (*EventsResp, error)
	GetBestListing(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*BestListingResp, error)
	GetNftOffers(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*OffersResp, error)
	GetCollectionTraits(ctx bCtx.Ctx, slug string) (*TraitsResp, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
	// BaseUrl overrides the public endpoint, mainly for tests
	BaseUrl string
}

type NftsResp struct {
	Nfts []collectible.RawItem `json:"nfts"`
	Next string                `json:"next"`
}

type NftResp struct {
	Nft collectible.RawItem `json:"nft"`
}

type EventsResp struct {
	AssetEvents []activity.MarketplaceEvent `json:"asset_events"`
	Next        string                      `json:"next"`
}

type ListingPrice struct {
	Current struct {
		Currency string            `json:"currency"`
		Decimals int32             `json:"decimals"`
		Value    domain.FlexString `json:"value"`
	} `json:"current"`
}

type BestListingResp struct {
	OrderHash string       `json:"order_hash"`
	Price     ListingPrice `json:"price"`
}

type Offer struct {
	OrderHash    string            `json:"order_hash"`
	CurrentPrice domain.FlexString `json:"current_price"`
	ListingTime  int64             `json:"listing_time"`
	Maker        struct {
		Address domain.Address `json:"address"`
	} `json:"maker"`
}

type OffersResp struct {
	Orders []Offer `json:"orders"`
	Next   string  `json:"next"`
}

type TraitsResp struct {
	Categories map[string]string         `json:"categories"`
	Counts     map[string]map[string]int `json:"counts"`
}
