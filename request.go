package gopaginate

import (
	"math"

	"github.com/spf13/cast"
)

const (
	fieldPerPage        = "perPage"
	fieldCurrentPage    = "currentPage"
	fieldIsFromStart    = "isFromStart"
	fieldIsLengthAware  = "isLengthAware"
	fieldSkipPagination = "skipPagination"

	// maxPageValue bounds perPage and currentPage so that offset and limit
	// arithmetic cannot overflow.
	maxPageValue = math.MaxInt32
)

// RawPaginationRequest is intended for API payloads where the field types are
// not trusted. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPaginationRequest `json:",inline"`
//	}
//
// Absent (nil) fields take their defaults.
type RawPaginationRequest struct {
	// PerPage - number of rows per page. Numbers and numeric strings are accepted.
	PerPage any `json:"perPage,omitempty" form:"perPage"`
	// CurrentPage - 1-based page number. Numbers and numeric strings are accepted.
	CurrentPage any `json:"currentPage,omitempty" form:"currentPage"`
	// IsFromStart - return every row from the first one through CurrentPage.
	IsFromStart any `json:"isFromStart,omitempty" form:"isFromStart"`
	// IsLengthAware - always fetch totals.
	IsLengthAware any `json:"isLengthAware,omitempty" form:"isLengthAware"`
	// SkipPagination - run the query without OFFSET/LIMIT and without totals.
	SkipPagination any `json:"skipPagination,omitempty" form:"skipPagination"`
}

// Decode validates field types in a fixed order (perPage, currentPage,
// isFromStart, isLengthAware, skipPagination) and converts the payload into
// *PaginationRequest. The first violation is returned as *ConfigError.
func (r RawPaginationRequest) Decode() (*PaginationRequest, error) {
	ret := NewPaginationRequest()

	if r.PerPage != nil {
		perPage, err := decodeInt(fieldPerPage, r.PerPage)
		if err != nil {
			return nil, err
		}
		if perPage <= 0 {
			return nil, newConfigError(fieldPerPage, "a positive integer")
		}
		ret.perPage = perPage
	}

	if r.CurrentPage != nil {
		currentPage, err := decodeInt(fieldCurrentPage, r.CurrentPage)
		if err != nil {
			return nil, err
		}
		ret.currentPage = currentPage
	}

	var err error
	if ret.isFromStart, err = decodeBool(fieldIsFromStart, r.IsFromStart); err != nil {
		return nil, err
	}
	if ret.isLengthAware, err = decodeBool(fieldIsLengthAware, r.IsLengthAware); err != nil {
		return nil, err
	}
	if ret.skipPagination, err = decodeBool(fieldSkipPagination, r.SkipPagination); err != nil {
		return nil, err
	}

	return ret, nil
}

func decodeInt(field string, v any) (int, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, newConfigError(field, "a number")
	}

	if math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxPageValue {
		return 0, newConfigError(field, "an integer")
	}

	return int(f), nil
}

func decodeBool(field string, v any) (bool, error) {
	if v == nil {
		return false, nil
	}

	b, ok := v.(bool)
	if !ok {
		return false, newConfigError(field, "a boolean")
	}

	return b, nil
}

// PaginationRequest describes which page to fetch. Zero values of PerPage and
// CurrentPage mean DefaultPerPage and DefaultCurrentPage respectively; a nil
// *PaginationRequest is equivalent to NewPaginationRequest().
type PaginationRequest struct {
	perPage        int
	currentPage    int
	isFromStart    bool
	isLengthAware  bool
	skipPagination bool
}

func NewPaginationRequest() *PaginationRequest {
	return &PaginationRequest{
		perPage:     DefaultPerPage,
		currentPage: DefaultCurrentPage,
	}
}

// WithPerPage sets the page size. Zero resets it to DefaultPerPage, negative
// values are rejected by Paginate.
func (r *PaginationRequest) WithPerPage(perPage int) *PaginationRequest {
	if r == nil {
		r = NewPaginationRequest()
	}

	r.perPage = perPage

	return r
}

// WithCurrentPage sets the 1-based page number. Values below 1 are treated as 1.
func (r *PaginationRequest) WithCurrentPage(currentPage int) *PaginationRequest {
	if r == nil {
		r = NewPaginationRequest()
	}

	r.currentPage = currentPage

	return r
}

// WithFromStart switches to cumulative mode: OFFSET 0, LIMIT perPage*currentPage.
// Totals are always fetched in this mode.
func (r *PaginationRequest) WithFromStart() *PaginationRequest {
	if r == nil {
		r = NewPaginationRequest()
	}

	r.isFromStart = true

	return r
}

// WithLengthAware forces the total count to be fetched for every page.
func (r *PaginationRequest) WithLengthAware() *PaginationRequest {
	if r == nil {
		r = NewPaginationRequest()
	}

	r.isLengthAware = true

	return r
}

// WithSkipPagination makes Paginate execute the query as is.
//
// IMPORTANT:
// Totals are never fetched when pagination is skipped, even together with
// WithLengthAware or WithFromStart.
func (r *PaginationRequest) WithSkipPagination() *PaginationRequest {
	if r == nil {
		r = NewPaginationRequest()
	}

	r.skipPagination = true

	return r
}

// GetPerPage returns the page size with the default applied.
func (r *PaginationRequest) GetPerPage() int {
	if r == nil || r.perPage == 0 {
		return DefaultPerPage
	}

	return r.perPage
}

// GetCurrentPage returns the page number as requested, with the default
// applied but before normalization.
func (r *PaginationRequest) GetCurrentPage() int {
	if r == nil || r.currentPage == 0 {
		return DefaultCurrentPage
	}

	return r.currentPage
}

func (r *PaginationRequest) IsFromStart() bool {
	return r != nil && r.isFromStart
}

func (r *PaginationRequest) IsLengthAware() bool {
	return r != nil && r.isLengthAware
}

func (r *PaginationRequest) IsSkipPagination() bool {
	return r != nil && r.skipPagination
}

func (r *PaginationRequest) validate() error {
	if perPage := r.GetPerPage(); perPage < 0 || perPage > maxPageValue {
		return newConfigError(fieldPerPage, "a positive integer")
	}

	if currentPage := r.GetCurrentPage(); currentPage > maxPageValue || currentPage < -maxPageValue {
		return newConfigError(fieldCurrentPage, "an integer")
	}

	return nil
}

// ShouldFetchTotals reports whether Paginate will issue the count query for
// this request.
func (r *PaginationRequest) ShouldFetchTotals() bool {
	return (r.IsLengthAware() || r.normalizedCurrentPage() == 1 || r.IsFromStart()) && !r.IsSkipPagination()
}

func (r *PaginationRequest) normalizedCurrentPage() int {
	currentPage := r.GetCurrentPage()
	if currentPage < 1 || r.IsSkipPagination() {
		return 1
	}

	return currentPage
}
