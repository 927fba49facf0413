package gopaginate

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CountQueryAlias is the alias of the base query inside the count query.
const CountQueryAlias = "count__query__"

// Paginate applies pagination to q and executes it, together with a count
// query when totals are needed, inside one transaction of q's client.
//
// q is modified in place (OFFSET/LIMIT are appended), so do not reuse it
// concurrently or for another Paginate call. A nil req means the defaults.
//
// Configuration errors are returned as *ConfigError before anything is
// executed. Execution errors are returned unchanged, and no partial result is
// ever returned alongside them.
func Paginate[T any](ctx context.Context, q Query, req *PaginationRequest) (*PaginationResult[T], error) {
	if q == nil {
		return nil, fmt.Errorf("cannot paginate: query is nil")
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	client := q.Client()
	if client == nil {
		return nil, fmt.Errorf("cannot paginate: query is not bound to a client")
	}
	config := client.Config()

	var (
		perPage        = NormalizePerPageMax(req.GetPerPage(), config.MaxPerPage)
		currentPage    = req.normalizedCurrentPage()
		skipPagination = req.IsSkipPagination()
		fetchTotals    = req.ShouldFetchTotals()
		debug          = q.IsDebug()
	)

	// The count query is derived before OFFSET/LIMIT land on q.
	var countQuery Query
	if fetchTotals {
		countQuery = newCountQuery(q)
	}

	window := newPageWindow(perPage, currentPage, req.IsFromStart(), skipPagination)
	window.Apply(q)

	if debug {
		config.logger().Debug("paginate",
			zap.Int(KeyPerPage, perPage),
			zap.Int(KeyCurrentPage, currentPage),
			zap.Stringer("window", window),
			zap.Bool("fetchTotals", fetchTotals),
		)
	}

	var ret *PaginationResult[T]
	err := client.Transaction(ctx, func(ctx context.Context, tx Tx) error {
		var data []T
		if err := q.Transacting(tx).Find(ctx, &data); err != nil {
			return err
		}

		var t *totals
		if countQuery != nil {
			row := make(map[string]any, 1)
			if err := countQuery.Transacting(tx).First(ctx, &row); err != nil {
				return err
			}

			total, err := readTotal(row, config.totalKeys())
			if err != nil {
				return err
			}
			t = lo.ToPtr(newTotals(total, perPage))
		}

		if data == nil {
			data = []T{}
		}

		from := window.GetOffset()
		ret = &PaginationResult[T]{
			Data: data,
			Pagination: config.postProcess(buildPagination(
				t,
				lo.Ternary(skipPagination, len(data), perPage),
				currentPage,
				from,
				from+len(data),
			)),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// newCountQuery builds
//
//	SELECT COUNT(*) AS total FROM (<q without ORDER BY and OFFSET>) AS count__query__
//
// on a fresh query of q's family, carrying q's debug flag.
func newCountQuery(q Query) Query {
	sub := q.Clone().Offset(0).ClearOrder().As(CountQueryAlias)

	return q.Client().NewQuery().
		Count("*", KeyTotal).
		From(sub).
		Debug(q.IsDebug())
}
