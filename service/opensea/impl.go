package opensea

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	"github.com/parodee/goapi/domain"
)

const (
	apikeyHeader = "x-api-key"
	v2Api        = "https://api.opensea.io/api/v2"
)

func NewClient(cfg *ClientCfg) Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = v2Api
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		apikey:  cfg.Apikey,
		baseUrl: baseUrl,
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	apikey  string
	baseUrl string
}

func (c *client) GetCollectionNfts(ctx bCtx.Ctx, slug string, limit int) (*NftsResp, error) {
	url := fmt.Sprintf("%s/collection/%s/nfts?limit=%s", c.baseUrl, slug, strconv.Itoa(limit))
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &NftsResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetNft(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*NftResp, error) {
	url := fmt.Sprintf("%s/chain/%s/contract/%s/nfts/%s", c.baseUrl, chain, contract.ToLowerStr(), identifier)
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &NftResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetNftEvents(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId, limit int) (*EventsResp, error) {
	url := fmt.Sprintf("%s/events/chain/%s/contract/%s/nfts/%s?limit=%s", c.baseUrl, chain, contract.ToLowerStr(), identifier, strconv.Itoa(limit))
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &EventsResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetBestListing(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*BestListingResp, error) {
	url := fmt.Sprintf("%s/listings/chain/%s/nfts/%s/%s/best", c.baseUrl, chain, contract.ToLowerStr(), identifier)
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &BestListingResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetNftOffers(ctx bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*OffersResp, error) {
	base, err := url.Parse(fmt.Sprintf("%s/orders/%s/%s/offers", c.baseUrl, chain, SeaportProtocol))
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("asset_contract_address", contract.ToLowerStr())
	params.Add("token_ids", identifier.String())
	params.Add("order_by", "eth_price")
	params.Add("order_direction", "desc")

	base.RawQuery = params.Encode()
	url := base.String()

	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}

	resp := &OffersResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetCollectionTraits(ctx bCtx.Ctx, slug string) (*TraitsResp, error) {
	url := fmt.Sprintf("%s/traits/%s", c.baseUrl, slug)
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &TraitsResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set(apikeyHeader, c.apikey)
	req.Header.Set("accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
