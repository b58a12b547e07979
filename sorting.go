package ragproxy

import "sort"

type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

type SortParams struct {
	Limit int
	By    string
	Order SortOrder
}

func (p SortParams) Empty() bool {
	return p.Limit == 0 && p.By == "" && p.Order == ""
}

func (p SortParams) Valid(sortableBy []string) bool {
	if p.Limit < 0 {
		return false
	}

	if p.By != "" {
		var found bool
		for _, s := range sortableBy {
			if s == p.By {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// applySort orders and bounds a listing in memory. Listings are pass-through
// from the backend, which offers no ordering of its own.
func applySort[T any](items []T, p SortParams, key func(T) string) []T {
	if p.By != "" {
		sort.SliceStable(items, func(i, j int) bool {
			a, b := key(items[i]), key(items[j])
			if p.Order == SortOrderDesc {
				return a > b
			}
			return a < b
		})
	}

	if p.Limit > 0 && len(items) > p.Limit {
		items = items[:p.Limit]
	}

	return items
}
