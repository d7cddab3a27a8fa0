package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/ptr"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
	"github.com/parodee/goapi/service/cache"
	"github.com/parodee/goapi/service/cache/provider/primitive"
	"github.com/parodee/goapi/service/opensea"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FetchCollection(c bCtx.Ctx, slug string, limit int) ([]collectible.RawItem, error) {
	args := m.Called(slug, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collectible.RawItem), args.Error(1)
}

func (m *mockRepo) FetchItem(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*collectible.RawItem, error) {
	args := m.Called(chain, contract, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collectible.RawItem), args.Error(1)
}

type mockOpensea struct {
	mock.Mock
}

func (m *mockOpensea) GetCollectionNfts(c bCtx.Ctx, slug string, limit int) (*opensea.NftsResp, error) {
	args := m.Called(slug, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.NftsResp), args.Error(1)
}

func (m *mockOpensea) GetNft(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*opensea.NftResp, error) {
	args := m.Called(chain, contract, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.NftResp), args.Error(1)
}

func (m *mockOpensea) GetNftEvents(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId, limit int) (*opensea.EventsResp, error) {
	args := m.Called(chain, contract, identifier, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.EventsResp), args.Error(1)
}

func (m *mockOpensea) GetBestListing(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*opensea.BestListingResp, error) {
	args := m.Called(chain, contract, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.BestListingResp), args.Error(1)
}

func (m *mockOpensea) GetNftOffers(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*opensea.OffersResp, error) {
	args := m.Called(chain, contract, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.OffersResp), args.Error(1)
}

func (m *mockOpensea) GetCollectionTraits(c bCtx.Ctx, slug string) (*opensea.TraitsResp, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opensea.TraitsResp), args.Error(1)
}

type collectibleSuite struct {
	suite.Suite
	ctx  bCtx.Ctx
	repo *mockRepo
	os   *mockOpensea
	uc   collectible.Usecase
}

func TestCollectibleSuite(t *testing.T) {
	suite.Run(t, new(collectibleSuite))
}

func (s *collectibleSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = new(mockRepo)
	s.os = new(mockOpensea)
	s.uc = New(&CollectibleUsecaseCfg{
		Repo:    s.repo,
		Opensea: s.os,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "collectible",
			Cache: primitive.NewPrimitive("test", 1),
		}),
		Collections: map[string]collectible.CollectionInfo{
			"parodee-pixel-chaos": {Slug: "parodee-pixel-chaos", Contract: "0xabc", Chain: domain.ChainEthereum},
			"parodee-hyperevm":    {Slug: "parodee-hyperevm", Contract: "0xdef", Chain: domain.ChainHyperevm},
		},
		DefaultSlug:    "parodee-pixel-chaos",
		TraitAllowList: []string{"Background", "Hat", "Eyes", "Mouth"},
		PageSize:       25,
		MaxLimit:       100,
		WindowSize:     5,
		EnrichLimit:    30,
	})
}

func flex(v string) *domain.FlexString {
	f := domain.FlexString(v)
	return &f
}

func rawFixture() []collectible.RawItem {
	return []collectible.RawItem{
		{Identifier: flex("1"), Name: ptr.String("Alpha"), Traits: []collectible.RawTrait{{TraitType: flex("Hat"), Value: flex("Cap")}}},
		{Identifier: flex("2"), Name: ptr.String("Bravo")},
		{Name: ptr.String("orphan")}, // no id, dropped
	}
}

func (s *collectibleSuite) TestList() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 25).Return(rawFixture(), nil).Once()

	res, err := s.uc.List(s.ctx, collectible.SearchParams{Slug: "parodee-pixel-chaos", Page: 1})
	s.Require().NoError(err)

	s.Equal("parodee-pixel-chaos", res.Collection)
	s.Len(res.Items, 2, "record without id dropped")
	s.Equal(1, res.Page)
	s.Equal(2, res.Total)
	s.Equal(1, res.TotalPages)
	s.Equal([]int{1}, res.Pages)
	s.repo.AssertExpectations(s.T())
}

func (s *collectibleSuite) TestListCachesRawFetch() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 25).Return(rawFixture(), nil).Once()

	_, err := s.uc.List(s.ctx, collectible.SearchParams{Page: 1})
	s.Require().NoError(err)
	_, err = s.uc.List(s.ctx, collectible.SearchParams{Page: 1, Search: "alpha"})
	s.Require().NoError(err)

	s.repo.AssertExpectations(s.T())
}

func (s *collectibleSuite) TestListOverFetchesForLaterPages() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 60).Return(rawFixture(), nil).Once()

	res, err := s.uc.List(s.ctx, collectible.SearchParams{Page: 3, Limit: 20})
	s.Require().NoError(err)
	s.Equal(1, res.Page, "page clamped to the available range")
	s.repo.AssertExpectations(s.T())
}

func (s *collectibleSuite) TestListFetchCapped() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 100).Return(rawFixture(), nil).Once()

	_, err := s.uc.List(s.ctx, collectible.SearchParams{Page: 9, Limit: 50})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *collectibleSuite) TestListUnknownSlugFallsBack() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 25).Return(rawFixture(), nil).Once()

	res, err := s.uc.List(s.ctx, collectible.SearchParams{Slug: "who-dis", Page: 1})
	s.Require().NoError(err)
	s.Equal("parodee-pixel-chaos", res.Collection)
}

func (s *collectibleSuite) TestListRepoError() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 25).Return(nil, opensea.ErrStatusCodeNotOk)

	_, err := s.uc.List(s.ctx, collectible.SearchParams{Page: 1})
	s.ErrorIs(err, opensea.ErrStatusCodeNotOk)
}

func (s *collectibleSuite) TestGet() {
	s.repo.On("FetchItem", domain.ChainEthereum, domain.Address("0xabc"), domain.TokenId("1")).
		Return(&collectible.RawItem{Identifier: flex("1"), Name: ptr.String("Alpha")}, nil)

	res, err := s.uc.Get(s.ctx, domain.ChainEthereum, "0xabc", "1")
	s.Require().NoError(err)
	s.Equal("Alpha", res.Nft.Name)
	s.Equal("parodee-pixel-chaos", res.Nft.CollectionSlug, "collection resolved from contract")
}

func (s *collectibleSuite) TestGetNotFound() {
	s.repo.On("FetchItem", domain.ChainEthereum, domain.Address("0xabc"), domain.TokenId("99")).
		Return(nil, domain.ErrNotFound)

	_, err := s.uc.Get(s.ctx, domain.ChainEthereum, "0xabc", "99")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *collectibleSuite) TestFacetsFromCollectionTraits() {
	s.os.On("GetCollectionTraits", "parodee-pixel-chaos").Return(&opensea.TraitsResp{
		Counts: map[string]map[string]int{
			"Background": {"Red": 1, "Blue": 3},
			"Aura":       {"Gold": 2}, // outside the allow list
		},
	}, nil).Once()

	facets, err := s.uc.Facets(s.ctx, "parodee-pixel-chaos")
	s.Require().NoError(err)
	s.Equal([]string{"Blue", "Red"}, facets["Background"])
	s.NotContains(facets, "Aura")
	s.repo.AssertNotCalled(s.T(), "FetchCollection", mock.Anything, mock.Anything)
}

func (s *collectibleSuite) TestFacetsFallsBackToWorkingSetWithEnrichment() {
	s.os.On("GetCollectionTraits", "parodee-pixel-chaos").Return(nil, opensea.ErrStatusCodeNotOk).Once()
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 100).Return(rawFixture(), nil).Once()
	// item 2 has no traits, gets a detail fetch
	s.repo.On("FetchItem", domain.ChainEthereum, domain.Address("0xabc"), domain.TokenId("2")).
		Return(&collectible.RawItem{
			Identifier: flex("2"),
			Traits:     []collectible.RawTrait{{TraitType: flex("Eyes"), Value: flex("Laser")}},
		}, nil).Once()

	facets, err := s.uc.Facets(s.ctx, "parodee-pixel-chaos")
	s.Require().NoError(err)
	s.Equal([]string{"Cap"}, facets["Hat"])
	s.Equal([]string{"Laser"}, facets["Eyes"])
	s.repo.AssertExpectations(s.T())
}

func (s *collectibleSuite) TestFacetsEnrichmentSkipsFailures() {
	s.os.On("GetCollectionTraits", "parodee-pixel-chaos").Return(nil, opensea.ErrStatusCodeNotOk).Once()
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 100).Return(rawFixture(), nil).Once()
	s.repo.On("FetchItem", domain.ChainEthereum, domain.Address("0xabc"), domain.TokenId("2")).
		Return(nil, opensea.ErrStatusCodeNotOk).Once()

	facets, err := s.uc.Facets(s.ctx, "parodee-pixel-chaos")
	s.Require().NoError(err, "partial facets are fine")
	s.Equal([]string{"Cap"}, facets["Hat"])
}

func (s *collectibleSuite) TestFacetsEnrichmentAbortsOnCancelledContext() {
	s.os.On("GetCollectionTraits", "parodee-pixel-chaos").Return(nil, opensea.ErrStatusCodeNotOk).Once()
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 100).Return(rawFixture(), nil).Once()

	ctx, cancel := bCtx.WithCancel(s.ctx)
	cancel()

	facets, err := s.uc.Facets(ctx, "parodee-pixel-chaos")
	s.Require().NoError(err, "cancellation abandons enrichment, not the response")
	s.Equal([]string{"Cap"}, facets["Hat"], "already-fetched traits still served")
	s.repo.AssertNotCalled(s.T(), "FetchItem", mock.Anything, mock.Anything, mock.Anything)
}

func (s *collectibleSuite) TestWarmUp() {
	s.repo.On("FetchCollection", "parodee-pixel-chaos", 100).Return(rawFixture(), nil).Once()
	s.repo.On("FetchCollection", "parodee-hyperevm", 100).Return([]collectible.RawItem{}, nil).Once()

	s.uc.WarmUp(s.ctx)
	s.repo.AssertExpectations(s.T())
}
