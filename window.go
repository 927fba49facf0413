package gopaginate

import "strconv"

// pageWindow is the OFFSET/LIMIT pair a request resolves to.
type pageWindow struct {
	offset int
	limit  int
	// skip means neither OFFSET nor LIMIT is applied.
	skip bool
}

// newPageWindow resolves the window for the already normalized currentPage.
//
//   - default mode → OFFSET (currentPage-1)*perPage LIMIT perPage
//   - from-start mode → OFFSET 0 LIMIT perPage*currentPage
//   - skipped pagination → no OFFSET/LIMIT, offset reported as 0
func newPageWindow(perPage, currentPage int, isFromStart, skip bool) pageWindow {
	if skip {
		return pageWindow{skip: true}
	}

	if isFromStart {
		return pageWindow{offset: 0, limit: perPage * currentPage}
	}

	return pageWindow{offset: (currentPage - 1) * perPage, limit: perPage}
}

// Apply applies the window to q in place.
func (w pageWindow) Apply(q Query) Query {
	if w.skip {
		return q
	}

	return q.Offset(w.offset).Limit(w.limit)
}

// GetOffset returns the offset the first returned row has in the dataset.
func (w pageWindow) GetOffset() int {
	return w.offset
}

// String - implements fmt.Stringer.
func (w pageWindow) String() string {
	if w.skip {
		return "unbounded"
	}

	return "offset " + strconv.Itoa(w.offset) + " limit " + strconv.Itoa(w.limit)
}
