package gopaginate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMClient implements Client on top of a *gorm.DB connection.
type GORMClient struct {
	db     *gorm.DB
	config ClientConfig
}

func NewGORMClient(db *gorm.DB) *GORMClient {
	return &GORMClient{db: db}
}

// WithPostProcessResponse sets the hook applied to every pagination map.
func (c *GORMClient) WithPostProcessResponse(fn func(Pagination) Pagination) *GORMClient {
	if c == nil {
		c = new(GORMClient)
	}

	c.config.PostProcessResponse = fn

	return c
}

// WithTotalKeys sets the keys the total is looked up under in the count row.
// Use it for drivers that change the case of column aliases.
func (c *GORMClient) WithTotalKeys(keys ...string) *GORMClient {
	if c == nil {
		c = new(GORMClient)
	}

	c.config.TotalKeys = keys

	return c
}

// WithMaxPerPage clamps the page size of every request to maxPerPage.
func (c *GORMClient) WithMaxPerPage(maxPerPage int) *GORMClient {
	if c == nil {
		c = new(GORMClient)
	}

	c.config.MaxPerPage = maxPerPage

	return c
}

func (c *GORMClient) WithLogger(logger *zap.Logger) *GORMClient {
	if c == nil {
		c = new(GORMClient)
	}

	c.config.Logger = logger

	return c
}

// Query wraps a gorm query chain built on the client's connection.
//
// Usage:
//
//	q := client.Query(db.Model(&User{}).Where("age > ?", 18).Order("id"))
//	res, err := gopaginate.Paginate[User](ctx, q, req)
func (c *GORMClient) Query(db *gorm.DB) *GORMQuery {
	return &GORMQuery{client: c, db: db}
}

// NewQuery - implements Client.
func (c *GORMClient) NewQuery() Query {
	return &GORMQuery{client: c, db: c.db.Session(&gorm.Session{NewDB: true})}
}

// Transaction - implements Client. The *gorm.DB of the transaction is the Tx
// handed to fn.
func (c *GORMClient) Transaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
}

// Config - implements Client.
func (c *GORMClient) Config() ClientConfig {
	if c == nil {
		return ClientConfig{}
	}

	return c.config
}

// GORMQuery implements Query on top of a *gorm.DB query chain.
type GORMQuery struct {
	client *GORMClient
	db     *gorm.DB
	alias  string
	debug  bool
	tx     *gorm.DB
	err    error
}

// DB returns the underlying gorm query chain.
func (q *GORMQuery) DB() *gorm.DB {
	return q.db
}

// Client - implements Query.
func (q *GORMQuery) Client() Client {
	return q.client
}

// Clone - implements Query. The statement is copied right away so later
// changes to either query do not leak into the other.
func (q *GORMQuery) Clone() Query {
	return &GORMQuery{
		client: q.client,
		db:     q.db.Session(&gorm.Session{}).Clauses(),
		alias:  q.alias,
		debug:  q.debug,
		tx:     q.tx,
		err:    q.err,
	}
}

// Offset - implements Query.
func (q *GORMQuery) Offset(offset int) Query {
	// gorm keeps the previous offset when 0 is passed, so drop it by hand.
	if offset == 0 {
		return q.resetOffset()
	}

	q.db = q.db.Offset(offset)

	return q
}

func (q *GORMQuery) resetOffset() Query {
	q.db = q.db.Clauses()

	c, ok := q.db.Statement.Clauses["LIMIT"]
	if !ok {
		return q
	}

	limit, ok := c.Expression.(clause.Limit)
	if !ok || limit.Limit == nil {
		delete(q.db.Statement.Clauses, "LIMIT")
		return q
	}

	limit.Offset = 0
	c.Expression = limit
	q.db.Statement.Clauses["LIMIT"] = c

	return q
}

// Limit - implements Query.
func (q *GORMQuery) Limit(limit int) Query {
	q.db = q.db.Limit(limit)

	return q
}

// ClearOrder - implements Query.
func (q *GORMQuery) ClearOrder() Query {
	q.db = q.db.Clauses()
	delete(q.db.Statement.Clauses, "ORDER BY")

	return q
}

// As - implements Query.
func (q *GORMQuery) As(alias string) Query {
	q.alias = alias

	return q
}

// Count - implements Query.
func (q *GORMQuery) Count(column string, alias string) Query {
	q.db = q.db.Select(fmt.Sprintf("COUNT(%s) AS %s", column, alias))

	return q
}

// From - implements Query. sub must be a *GORMQuery with an alias.
func (q *GORMQuery) From(sub Query) Query {
	gormSub, ok := sub.(*GORMQuery)
	if !ok {
		q.err = fmt.Errorf("cannot select from %T: not a gorm query", sub)
		return q
	}

	if gormSub.alias == "" {
		q.err = fmt.Errorf("cannot select from subquery without alias")
		return q
	}

	q.db = q.db.Table(fmt.Sprintf("(?) AS %s", gormSub.alias), gormSub.db)

	return q
}

// Debug - implements Query.
func (q *GORMQuery) Debug(enabled bool) Query {
	q.debug = enabled
	if enabled {
		q.db = q.db.Debug()
	}

	return q
}

// IsDebug - implements Query.
func (q *GORMQuery) IsDebug() bool {
	return q.debug
}

// Transacting - implements Query. tx must be the *gorm.DB handed out by
// GORMClient.Transaction.
func (q *GORMQuery) Transacting(tx Tx) Query {
	gormTx, ok := tx.(*gorm.DB)
	if !ok {
		q.err = fmt.Errorf("cannot bind query to transaction of type %T", tx)
		return q
	}

	q.tx = gormTx

	return q
}

// Find - implements Query.
func (q *GORMQuery) Find(ctx context.Context, dest any) error {
	if q.err != nil {
		return q.err
	}

	return q.session(ctx).Find(dest).Error
}

// First - implements Query. It does not impose any ordering.
func (q *GORMQuery) First(ctx context.Context, dest any) error {
	if q.err != nil {
		return q.err
	}

	return q.session(ctx).Take(dest).Error
}

// session returns a copy of the query chain bound to ctx and, if set, to the
// transaction connection.
func (q *GORMQuery) session(ctx context.Context) *gorm.DB {
	db := q.db.Session(&gorm.Session{Context: ctx})
	if q.tx != nil {
		db.Statement.ConnPool = q.tx.Statement.ConnPool
	}

	return db
}

var (
	_ Client = (*GORMClient)(nil)
	_ Query  = (*GORMQuery)(nil)
)
