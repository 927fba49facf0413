package gopaginate

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Keys of the Pagination map as produced by Paginate, before
// ClientConfig.PostProcessResponse is applied.
const (
	KeyTotal       = "total"
	KeyLastPage    = "lastPage"
	KeyPrevPage    = "prevPage"
	KeyNextPage    = "nextPage"
	KeyPerPage     = "perPage"
	KeyCurrentPage = "currentPage"
	KeyFrom        = "from"
	KeyTo          = "to"
)

// Pagination is the pagination metadata. KeyPerPage, KeyCurrentPage, KeyFrom
// and KeyTo are always present. KeyTotal, KeyLastPage, KeyPrevPage and
// KeyNextPage are present only when totals were fetched; KeyPrevPage and
// KeyNextPage hold nil when there is no such page.
type Pagination map[string]any

// Int returns the value under key as int64. The second return value is false
// if the key is absent, nil or not numeric.
func (p Pagination) Int(key string) (int64, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false
	}

	ret, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}

	return ret, true
}

// HasTotals reports whether the total count was fetched.
func (p Pagination) HasTotals() bool {
	return lo.HasKey(p, KeyTotal)
}

// PaginationResult is a generic paginated result container.
type PaginationResult[T any] struct {
	// Data rows of the requested page (or pages, in from-start mode).
	Data []T `json:"data"`
	// Pagination metadata.
	Pagination Pagination `json:"pagination"`
}

type totals struct {
	total    int64
	lastPage int
}

func newTotals(total int64, perPage int) totals {
	return totals{
		total:    total,
		lastPage: int((total + int64(perPage) - 1) / int64(perPage)),
	}
}

// readTotal extracts the total from a count row. Keys are tried in order and
// zero values fall through to the next key; a row with none of the keys
// counts as zero.
func readTotal(row map[string]any, keys []string) (int64, error) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}

		if b, isBytes := v.([]byte); isBytes {
			v = string(b)
		}

		total, err := cast.ToInt64E(v)
		if err != nil {
			return 0, fmt.Errorf("cannot read total from count result: %w", err)
		}

		if total != 0 {
			return total, nil
		}
	}

	return 0, nil
}

func buildPagination(t *totals, perPage, currentPage, from, to int) Pagination {
	ret := make(Pagination, 8)

	if t != nil {
		ret[KeyTotal] = t.total
		ret[KeyLastPage] = t.lastPage
		ret[KeyPrevPage] = nil
		ret[KeyNextPage] = nil

		if currentPage > 1 {
			ret[KeyPrevPage] = currentPage - 1
		}
		if currentPage < t.lastPage {
			ret[KeyNextPage] = currentPage + 1
		}
	}

	ret[KeyPerPage] = perPage
	ret[KeyCurrentPage] = currentPage
	ret[KeyFrom] = from
	ret[KeyTo] = to

	return ret
}
