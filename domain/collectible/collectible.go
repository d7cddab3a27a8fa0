package collectible

import (
	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/domain"
)

// Trait is one display attribute of a collectible
type Trait struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Collectible is the canonical item shape every upstream record is
// normalized into. Handlers and templates only ever see this shape.
type Collectible struct {
	Id              string           `json:"id"`
	Name            string           `json:"name"`
	ImageUrl        string           `json:"imageUrl"`
	Description     string           `json:"description"`
	Traits          []Trait          `json:"traits"`
	CollectionSlug  string           `json:"collectionSlug"`
	ContractAddress domain.Address   `json:"contractAddress"`
	Chain           domain.ChainName `json:"chain"`
}

// FacetMap maps a trait category to its sorted distinct values
type FacetMap map[string][]string

// CollectionInfo carries collection-level fallbacks applied while
// normalizing records that omit them
type CollectionInfo struct {
	Slug     string
	Contract domain.Address
	Chain    domain.ChainName
}

// ListResult is one resolved page of a collection
type ListResult struct {
	Collection string        `json:"collection"`
	Items      []Collectible `json:"items"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Pages      []int         `json:"pages"`
}

// Detail wraps a single collectible for the detail endpoint
type Detail struct {
	Nft Collectible `json:"nft"`
}

// Repo fetches raw upstream records
type Repo interface {
	FetchCollection(c bCtx.Ctx, slug string, limit int) ([]RawItem, error)
	FetchItem(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*RawItem, error)
}

// Usecase drives the listing pipeline
type Usecase interface {
	List(c bCtx.Ctx, params SearchParams) (*ListResult, error)
	Get(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*Detail, error)
	Facets(c bCtx.Ctx, slug string) (FacetMap, error)
	WarmUp(c bCtx.Ctx)
}
