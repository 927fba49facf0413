package gopaginate

import (
	"context"

	"go.uber.org/zap"
)

// Tx is an opaque transaction handle handed out by Client.Transaction. Only
// queries of the same family know what it is.
type Tx any

// Query is the query-builder capability Paginate drives. Mutating methods
// change the receiver in place and return it, so calls can be chained.
type Query interface {
	// Client returns the client the query is bound to.
	Client() Client
	// Clone returns an independent copy of the query.
	Clone() Query
	// Offset sets OFFSET. Zero removes any previously set offset.
	Offset(offset int) Query
	Limit(limit int) Query
	// ClearOrder removes every ORDER BY expression.
	ClearOrder() Query
	// As names the query when it is used as a subquery.
	As(alias string) Query
	// Count selects COUNT(column) AS alias.
	Count(column string, alias string) Query
	// From selects from sub, which must belong to the same family.
	From(sub Query) Query
	Debug(enabled bool) Query
	IsDebug() bool
	// Transacting binds the execution of the query to tx.
	Transacting(tx Tx) Query
	// Find executes the query and scans every row into dest, a pointer to a slice.
	Find(ctx context.Context, dest any) error
	// First executes the query and scans a single row into dest,
	// usually *map[string]any.
	First(ctx context.Context, dest any) error
}

// Client is the connection a Query family is built on.
type Client interface {
	// NewQuery returns an empty query sharing the client's connection.
	NewQuery() Query
	// Transaction runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; fn's error is returned unchanged.
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Config() ClientConfig
}

// ClientConfig holds per-client pagination settings.
type ClientConfig struct {
	// PostProcessResponse transforms the pagination map before it is returned,
	// e.g. to rename keys. Identity when nil. Data rows are never passed to it.
	PostProcessResponse func(Pagination) Pagination
	// TotalKeys lists the keys the total is read from in the count row, in
	// order of preference. The first non-zero value wins.
	// Defaults to DefaultTotalKeys.
	TotalKeys []string
	// MaxPerPage clamps the page size. NoLimit or zero disables clamping.
	MaxPerPage int
	// Logger receives debug output for queries with the debug flag set.
	Logger *zap.Logger
}

// DefaultTotalKeys covers drivers that upper-case unquoted aliases.
var DefaultTotalKeys = []string{"TOTAL", "total"}

func (c ClientConfig) postProcess(p Pagination) Pagination {
	if c.PostProcessResponse == nil {
		return p
	}

	return c.PostProcessResponse(p)
}

func (c ClientConfig) totalKeys() []string {
	if len(c.TotalKeys) == 0 {
		return DefaultTotalKeys
	}

	return c.TotalKeys
}

func (c ClientConfig) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}
