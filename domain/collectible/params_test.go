package collectible

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureItems() []Collectible {
	return []Collectible{
		{Id: "1", Name: "Alpha", Traits: []Trait{{Name: "Background", Value: "Blue"}, {Name: "Hat", Value: "Cap"}}},
		{Id: "2", Name: "Bravo", Traits: []Trait{{Name: "Background", Value: "Red"}, {Name: "Hat", Value: "Cap"}}},
		{Id: "3", Name: "Charlie", Traits: []Trait{{Name: "Background", Value: "Blue"}, {Name: "Hat", Value: "Crown"}}},
		{Id: "42", Name: "Delta", Traits: []Trait{{Name: "Eyes", Value: "Laser"}}},
	}
}

func ids(items []Collectible) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Id
	}
	return out
}

func TestApplySearch(t *testing.T) {
	items := fixtureItems()

	t.Run("case insensitive name match", func(t *testing.T) {
		got := Apply(items, SearchParams{Search: "ALPHA"})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("matches on id", func(t *testing.T) {
		got := Apply(items, SearchParams{Search: "42"})
		assert.Equal(t, []string{"42"}, ids(got))
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		got := Apply(items, SearchParams{Search: "  bravo  "})
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("no match yields empty not nil error", func(t *testing.T) {
		got := Apply(items, SearchParams{Search: "zzz"})
		assert.Empty(t, got)
	})
}

func TestApplyTraitFilters(t *testing.T) {
	items := fixtureItems()

	t.Run("or within a category", func(t *testing.T) {
		got := Apply(items, SearchParams{Selected: map[string][]string{
			"Background": {"Blue", "Red"},
		}})
		assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	})

	t.Run("and across categories", func(t *testing.T) {
		got := Apply(items, SearchParams{Selected: map[string][]string{
			"Background": {"Blue"},
			"Hat":        {"Cap"},
		}})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("empty selection is no constraint", func(t *testing.T) {
		got := Apply(items, SearchParams{Selected: map[string][]string{
			"Background": {},
		}})
		assert.Len(t, got, len(items))
	})
}

func TestApplySort(t *testing.T) {
	items := []Collectible{
		{Id: "1", Name: "Charlie"},
		{Id: "2", Name: "Alpha"},
		{Id: "3", Name: "Bravo"},
	}

	t.Run("featured keeps input order", func(t *testing.T) {
		got := Apply(items, SearchParams{SortBy: SearchSortOptionFeatured})
		assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	})

	t.Run("newest sorts by name ascending", func(t *testing.T) {
		got := Apply(items, SearchParams{SortBy: SearchSortOptionNewest})
		assert.Equal(t, []string{"2", "3", "1"}, ids(got))
	})

	t.Run("rarity sorts by name descending", func(t *testing.T) {
		got := Apply(items, SearchParams{SortBy: SearchSortOptionRarity})
		assert.Equal(t, []string{"1", "3", "2"}, ids(got))
	})

	t.Run("desc reverses the final sequence", func(t *testing.T) {
		got := Apply(items, SearchParams{SortBy: SearchSortOptionNewest, Dir: "desc"})
		assert.Equal(t, []string{"1", "3", "2"}, ids(got))
	})
}

func TestApplyPurity(t *testing.T) {
	items := fixtureItems()
	params := SearchParams{
		Search:   "a",
		SortBy:   SearchSortOptionNewest,
		Selected: map[string][]string{"Background": {"Blue"}},
	}

	once := Apply(items, params)
	twice := Apply(once, params)
	assert.Equal(t, once, twice, "applying twice must not change the result")

	// input untouched
	assert.Equal(t, fixtureItems(), items)
}

func TestBuildFacets(t *testing.T) {
	items := fixtureItems()
	allow := []string{"Background", "Hat", "Eyes", "Mouth"}

	facets := BuildFacets(items, allow)

	assert.Equal(t, []string{"Blue", "Red"}, facets["Background"], "deduped and sorted")
	assert.Equal(t, []string{"Cap", "Crown"}, facets["Hat"])
	assert.Equal(t, []string{"Laser"}, facets["Eyes"])
	assert.NotContains(t, facets, "Mouth", "no values means no facet entry")

	t.Run("categories outside the allow list are dropped", func(t *testing.T) {
		extra := append(items, Collectible{Id: "5", Traits: []Trait{{Name: "Aura", Value: "Gold"}}})
		facets := BuildFacets(extra, allow)
		assert.NotContains(t, facets, "Aura")
	})
}
