package repository

import (
	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
	"github.com/parodee/goapi/service/opensea"
)

type openseaRepo struct {
	client opensea.Client
}

// NewOpensea serves raw records from the live upstream api
func NewOpensea(client opensea.Client) collectible.Repo {
	return &openseaRepo{client: client}
}

func (r *openseaRepo) FetchCollection(c bCtx.Ctx, slug string, limit int) ([]collectible.RawItem, error) {
	resp, err := r.client.GetCollectionNfts(c, slug, limit)
	if err != nil {
		c.WithFields(log.Fields{
			"slug": slug,
			"err":  err,
		}).Error("client.GetCollectionNfts failed")
		return nil, err
	}
	return resp.Nfts, nil
}

func (r *openseaRepo) FetchItem(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*collectible.RawItem, error) {
	resp, err := r.client.GetNft(c, chain, contract, identifier)
	if err != nil {
		c.WithFields(log.Fields{
			"chain":      chain,
			"contract":   contract,
			"identifier": identifier,
			"err":        err,
		}).Error("client.GetNft failed")
		return nil, err
	}
	if resp.Nft.ResolvedId() == "" {
		return nil, domain.ErrNotFound
	}
	return &resp.Nft, nil
}
