package gopaginate

import (
	"context"
	"fmt"
	"maps"

	"github.com/samber/lo"
)

// fakeClient is an in-memory Client. The dataset is the integers
// 1..size; the count row is what First hands out for count queries.
type fakeClient struct {
	config   ClientConfig
	size     int
	countRow map[string]any
	findErr  error
	countErr error

	// calls records begin, find, count, commit and rollback in order.
	calls   []string
	created []*fakeQuery
}

type fakeTx struct{ id int }

func newFakeClient(size int) *fakeClient {
	return &fakeClient{
		size:     size,
		countRow: map[string]any{"total": int64(size)},
	}
}

func (c *fakeClient) newBaseQuery() *fakeQuery {
	return &fakeQuery{client: c, ordered: true}
}

func (c *fakeClient) NewQuery() Query {
	q := &fakeQuery{client: c}
	c.created = append(c.created, q)

	return q
}

func (c *fakeClient) Transaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	c.calls = append(c.calls, "begin")

	err := fn(ctx, &fakeTx{id: len(c.calls)})
	if err != nil {
		c.calls = append(c.calls, "rollback")
		return err
	}

	c.calls = append(c.calls, "commit")

	return nil
}

func (c *fakeClient) Config() ClientConfig {
	return c.config
}

func (c *fakeClient) executed() bool {
	return lo.Contains(c.calls, "find") || lo.Contains(c.calls, "count")
}

type fakeQuery struct {
	client  *fakeClient
	offset  *int
	limit   *int
	ordered bool
	alias   string
	count   string
	from    *fakeQuery
	debug   bool
	tx      Tx
}

func (q *fakeQuery) Client() Client {
	return q.client
}

func (q *fakeQuery) Clone() Query {
	clone := *q
	return &clone
}

func (q *fakeQuery) Offset(offset int) Query {
	q.offset = lo.ToPtr(offset)
	return q
}

func (q *fakeQuery) Limit(limit int) Query {
	q.limit = lo.ToPtr(limit)
	return q
}

func (q *fakeQuery) ClearOrder() Query {
	q.ordered = false
	return q
}

func (q *fakeQuery) As(alias string) Query {
	q.alias = alias
	return q
}

func (q *fakeQuery) Count(column string, alias string) Query {
	q.count = fmt.Sprintf("COUNT(%s) AS %s", column, alias)
	return q
}

func (q *fakeQuery) From(sub Query) Query {
	q.from = sub.(*fakeQuery)
	return q
}

func (q *fakeQuery) Debug(enabled bool) Query {
	q.debug = enabled
	return q
}

func (q *fakeQuery) IsDebug() bool {
	return q.debug
}

func (q *fakeQuery) Transacting(tx Tx) Query {
	q.tx = tx
	return q
}

func (q *fakeQuery) Find(_ context.Context, dest any) error {
	q.client.calls = append(q.client.calls, "find")
	if q.tx == nil {
		return fmt.Errorf("find outside of transaction")
	}
	if q.client.findErr != nil {
		return q.client.findErr
	}

	start := min(lo.FromPtr(q.offset), q.client.size)
	end := q.client.size
	if q.limit != nil {
		end = min(start+*q.limit, q.client.size)
	}

	rows := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, i+1)
	}
	*(dest.(*[]int)) = rows

	return nil
}

func (q *fakeQuery) First(_ context.Context, dest any) error {
	q.client.calls = append(q.client.calls, "count")
	if q.tx == nil {
		return fmt.Errorf("count outside of transaction")
	}
	if q.client.countErr != nil {
		return q.client.countErr
	}

	*(dest.(*map[string]any)) = maps.Clone(q.client.countRow)

	return nil
}

var (
	_ Client = (*fakeClient)(nil)
	_ Query  = (*fakeQuery)(nil)
)
