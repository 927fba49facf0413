// Package gopaginate provides offset/limit pagination with totals for SQL
// query builders.
//
// Overview
//
// A single call to Paginate takes a not yet executed query, applies
// OFFSET/LIMIT to it and, when needed, derives a COUNT(*) query from it.
// Both run inside one transaction so the page and the total describe the
// same snapshot.
//
// Addressing modes
//   - Default: page N of size P, i.e. OFFSET (N-1)*P LIMIT P.
//   - From start: every row from the beginning through page N, i.e.
//     OFFSET 0 LIMIT P*N. Handy for "load more" lists.
//
// Totals are fetched on the first page, in from-start mode and whenever the
// request is length aware. Skipping pagination runs the query untouched and
// never counts.
//
// Key concepts
//   - Query and Client: the capability interfaces Paginate drives. GORMQuery
//     and GORMClient implement them on top of gorm.
//   - PaginationRequest: the typed request. RawPaginationRequest is the
//     loosely typed payload form with validation.
//   - Pagination: the metadata map, passed through the client's
//     PostProcessResponse hook before it is returned.
//
// See the examples directory for runnable programs.
package gopaginate
