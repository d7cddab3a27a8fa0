package usecase

import (
	"sort"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	bMath "github.com/parodee/goapi/base/math"
	"github.com/parodee/goapi/base/metrics"
	"github.com/parodee/goapi/base/paging"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
	"github.com/parodee/goapi/domain/keys"
	"github.com/parodee/goapi/service/cache"
	"github.com/parodee/goapi/service/opensea"
)

const warmUpWorkers = 4

type CollectibleUsecaseCfg struct {
	Repo    collectible.Repo
	Opensea opensea.Client // optional, nil when serving snapshots only
	Cache   cache.Service
	// Collections is the slug allow list with per-collection fallbacks
	Collections    map[string]collectible.CollectionInfo
	DefaultSlug    string
	TraitAllowList []string
	PageSize       int
	MaxLimit       int
	WindowSize     int
	EnrichLimit    int
}

type impl struct {
	repo           collectible.Repo
	opensea        opensea.Client
	cache          cache.Service
	collections    map[string]collectible.CollectionInfo
	defaultSlug    string
	traitAllowList []string
	pageSize       int
	maxLimit       int
	windowSize     int
	enrichLimit    int
	mt             metrics.Service
}

func New(cfg *CollectibleUsecaseCfg) collectible.Usecase {
	return &impl{
		repo:           cfg.Repo,
		opensea:        cfg.Opensea,
		cache:          cfg.Cache,
		collections:    cfg.Collections,
		defaultSlug:    cfg.DefaultSlug,
		traitAllowList: cfg.TraitAllowList,
		pageSize:       cfg.PageSize,
		maxLimit:       cfg.MaxLimit,
		windowSize:     cfg.WindowSize,
		enrichLimit:    cfg.EnrichLimit,
		mt:             metrics.New("collectible"),
	}
}

func (im *impl) List(c bCtx.Ctx, params collectible.SearchParams) (*collectible.ListResult, error) {
	defer im.mt.BumpTime("list.time").End()

	slugName, info := im.resolveCollection(params.Slug)

	limit := params.Limit
	if limit <= 0 {
		limit = im.pageSize
	}
	limit = bMath.MinInt(limit, im.maxLimit)

	page := bMath.MaxInt(1, params.Page)

	// upstream paging is cursor based, over-fetch and slice locally
	fetchLimit := bMath.MinInt(limit*page, im.maxLimit)
	raw, err := im.fetchCollection(c, slugName, fetchLimit)
	if err != nil {
		im.mt.BumpSum("list.err", 1)
		return nil, err
	}

	items := im.normalizeAll(c, raw, info)
	filtered := collectible.Apply(items, params)

	pg := paging.Paginate(len(filtered), page, limit)
	return &collectible.ListResult{
		Collection: slugName,
		Items:      filtered[pg.Start:pg.End],
		Page:       pg.Current,
		Limit:      limit,
		Total:      pg.Total,
		TotalPages: pg.TotalPages,
		Pages:      paging.Window(pg.Current, pg.TotalPages, im.windowSize),
	}, nil
}

func (im *impl) Get(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*collectible.Detail, error) {
	defer im.mt.BumpTime("get.time").End()

	raw, err := im.repo.FetchItem(c, chain, contract, identifier)
	if err != nil {
		return nil, err
	}

	item, err := raw.Normalize(im.infoForContract(chain, contract))
	if err != nil {
		c.WithFields(log.Fields{
			"contract":   contract,
			"identifier": identifier,
			"err":        err,
		}).Warn("dropping unaddressable record")
		return nil, domain.ErrNotFound
	}
	return &collectible.Detail{Nft: item}, nil
}

func (im *impl) Facets(c bCtx.Ctx, slugParam string) (collectible.FacetMap, error) {
	defer im.mt.BumpTime("facets.time").End()

	slugName, info := im.resolveCollection(slugParam)

	facets := collectible.FacetMap{}
	key := keys.CacheKey(keys.PfxFacets, slugName)
	err := im.cache.GetByFunc(c, key, &facets, func() (interface{}, error) {
		f, err := im.buildFacets(c, slugName, info)
		if err != nil {
			return nil, err
		}
		return &f, nil
	})
	if err != nil {
		im.mt.BumpSum("facets.err", 1)
		return nil, err
	}
	return facets, nil
}

func (im *impl) WarmUp(c bCtx.Ctx) {
	defer im.mt.BumpTime("warmup.time").End()

	slugs := im.sortedSlugs()
	b := goroutines.NewBatch(warmUpWorkers, goroutines.WithBatchSize(len(slugs)))
	defer b.Close()
	for _, s := range slugs {
		s := s
		b.Queue(func() (interface{}, error) {
			_, err := im.fetchCollection(c, s, im.maxLimit)
			return s, err
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithFields(log.Fields{
				"slug": ret.Value(),
				"err":  ret.Error(),
			}).Warn("collection warm up failed")
		}
	}
}

// resolveCollection maps a requested slug onto the allow list, falling
// back to the default collection for anything unrecognized.
func (im *impl) resolveCollection(requested string) (string, collectible.CollectionInfo) {
	key := slug.Make(requested)
	if info, ok := im.collections[key]; ok {
		return key, info
	}
	return im.defaultSlug, im.collections[im.defaultSlug]
}

func (im *impl) infoForContract(chain domain.ChainName, contract domain.Address) collectible.CollectionInfo {
	for s, info := range im.collections {
		if info.Contract.Equals(contract) {
			info.Slug = s
			return info
		}
	}
	return collectible.CollectionInfo{Contract: contract, Chain: chain}
}

func (im *impl) fetchCollection(c bCtx.Ctx, slugName string, limit int) ([]collectible.RawItem, error) {
	raw := []collectible.RawItem{}
	key := keys.CacheKey(slugName, strconv.Itoa(limit))
	err := im.cache.GetByFunc(c, key, &raw, func() (interface{}, error) {
		items, err := im.repo.FetchCollection(c, slugName, limit)
		if err != nil {
			return nil, err
		}
		return &items, nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (im *impl) normalizeAll(c bCtx.Ctx, raw []collectible.RawItem, info collectible.CollectionInfo) []collectible.Collectible {
	items := make([]collectible.Collectible, 0, len(raw))
	for _, r := range raw {
		item, err := r.Normalize(info)
		if err != nil {
			c.WithFields(log.Fields{
				"slug": info.Slug,
				"err":  err,
			}).Warn("dropping unaddressable record")
			im.mt.BumpSum("normalize.dropped", 1)
			continue
		}
		items = append(items, item)
	}
	return items
}

func (im *impl) buildFacets(c bCtx.Ctx, slugName string, info collectible.CollectionInfo) (collectible.FacetMap, error) {
	// collection-level trait counts are one call when available
	if im.opensea != nil {
		if resp, err := im.opensea.GetCollectionTraits(c, slugName); err == nil && len(resp.Counts) > 0 {
			return facetsFromCounts(resp.Counts, im.traitAllowList), nil
		}
	}

	raw, err := im.fetchCollection(c, slugName, im.maxLimit)
	if err != nil {
		return nil, err
	}
	items := im.normalizeAll(c, raw, info)
	im.enrich(c, items, info)
	return collectible.BuildFacets(items, im.traitAllowList), nil
}

// enrich fills traits for items the collection listing omitted them
// on, best effort and bounded. Per-item failures are skipped; a
// cancelled context abandons the rest so stale work is discarded.
func (im *impl) enrich(c bCtx.Ctx, items []collectible.Collectible, info collectible.CollectionInfo) {
	fetched := 0
	for i := range items {
		if fetched >= im.enrichLimit {
			break
		}
		if len(items[i].Traits) > 0 {
			continue
		}
		if c.Err() != nil {
			return
		}
		raw, err := im.repo.FetchItem(c, items[i].Chain, items[i].ContractAddress, domain.TokenId(items[i].Id))
		fetched++
		if err != nil {
			continue
		}
		if full, err := raw.Normalize(info); err == nil {
			items[i].Traits = full.Traits
		}
	}
}

func (im *impl) sortedSlugs() []string {
	slugs := make([]string, 0, len(im.collections))
	for s := range im.collections {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}

func facetsFromCounts(counts map[string]map[string]int, allowList []string) collectible.FacetMap {
	allowed := make(map[string]bool, len(allowList))
	for _, c := range allowList {
		allowed[c] = true
	}

	facets := collectible.FacetMap{}
	for category, values := range counts {
		if !allowed[category] || len(values) == 0 {
			continue
		}
		sorted := make([]string, 0, len(values))
		for v := range values {
			sorted = append(sorted, v)
		}
		sort.Strings(sorted)
		facets[category] = sorted
	}
	return facets
}
