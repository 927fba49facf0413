package gopaginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_newPageWindow(t *testing.T) {
	tests := []struct {
		name        string
		perPage     int
		currentPage int
		isFromStart bool
		skip        bool
		want        pageWindow
		wantString  string
	}{
		{"first page", 10, 1, false, false, pageWindow{offset: 0, limit: 10}, "offset 0 limit 10"},
		{"third page", 10, 3, false, false, pageWindow{offset: 20, limit: 10}, "offset 20 limit 10"},
		{"from start through page 3", 10, 3, true, false, pageWindow{offset: 0, limit: 30}, "offset 0 limit 30"},
		{"skipped", 10, 3, true, true, pageWindow{skip: true}, "unbounded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newPageWindow(tt.perPage, tt.currentPage, tt.isFromStart, tt.skip)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantString, got.String())
		})
	}
}

func Test_pageWindow_Apply(t *testing.T) {
	client := newFakeClient(0)

	q := client.newBaseQuery()
	newPageWindow(5, 4, false, false).Apply(q)
	assert.Equal(t, 15, *q.offset)
	assert.Equal(t, 5, *q.limit)

	skipped := client.newBaseQuery()
	newPageWindow(5, 4, false, true).Apply(skipped)
	assert.Nil(t, skipped.offset)
	assert.Nil(t, skipped.limit)
}
