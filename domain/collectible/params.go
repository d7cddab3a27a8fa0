package collectible

import (
	"sort"
	"strings"

	"github.com/parodee/goapi/domain"
)

type SearchSortOption = string

const (
	// SearchSortOptionFeatured keeps the curated upstream order
	SearchSortOptionFeatured SearchSortOption = "featured"
	SearchSortOptionNewest   SearchSortOption = "newest"
	SearchSortOptionRarity   SearchSortOption = "rarity"
)

type SearchParams struct {
	Slug   string           `query:"slug"`
	Search string           `query:"search"`
	SortBy SearchSortOption `query:"sort"`
	Dir    string           `query:"dir"`
	Page   int              `query:"page"`
	Limit  int              `query:"limit"`
	// Selected maps trait category to the chosen values, parsed from
	// the attrs query param by the handler
	Selected map[string][]string
}

func (p SearchParams) SortDir() domain.SortDir {
	if strings.EqualFold(p.Dir, "desc") {
		return domain.SortDirDesc
	}
	return domain.SortDirAsc
}

// Apply runs search, trait filtering and sorting over items and returns
// a new slice. Pure and idempotent; the input slice is never mutated.
func Apply(items []Collectible, params SearchParams) []Collectible {
	out := make([]Collectible, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, it := range items {
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		if !matchesSelected(it, params.Selected) {
			continue
		}
		out = append(out, it)
	}

	switch params.SortBy {
	case SearchSortOptionNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SearchSortOptionRarity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	default:
		// featured keeps input order
	}

	if params.SortDir() == domain.SortDirDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out
}

func matchesSearch(it Collectible, search string) bool {
	return strings.Contains(strings.ToLower(it.Name), search) ||
		strings.Contains(strings.ToLower(it.Id), search)
}

// matchesSelected requires a match in every selected category, any of
// its values counting. An empty category selection is no constraint.
func matchesSelected(it Collectible, selected map[string][]string) bool {
	for category, values := range selected {
		if len(values) == 0 {
			continue
		}
		matched := false
		for _, t := range it.Traits {
			if t.Name != category {
				continue
			}
			for _, v := range values {
				if t.Value == v {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// BuildFacets collects distinct trait values per allow-listed category,
// sorted lexicographically. Categories outside the allow list are
// dropped even when present on items.
func BuildFacets(items []Collectible, allowList []string) FacetMap {
	allowed := make(map[string]bool, len(allowList))
	for _, c := range allowList {
		allowed[c] = true
	}

	seen := map[string]map[string]bool{}
	for _, it := range items {
		for _, t := range it.Traits {
			if !allowed[t.Name] || t.Value == "" {
				continue
			}
			if seen[t.Name] == nil {
				seen[t.Name] = map[string]bool{}
			}
			seen[t.Name][t.Value] = true
		}
	}

	facets := FacetMap{}
	for category, values := range seen {
		sorted := make([]string, 0, len(values))
		for v := range values {
			sorted = append(sorted, v)
		}
		sort.Strings(sorted)
		facets[category] = sorted
	}
	return facets
}
