package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, p := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, page)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(5), p.TotalItems)
	assert.True(t, p.HasMore)
	assert.Equal(t, 1, p.From)
	assert.Equal(t, 2, p.To)

	page, p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)
	assert.False(t, p.HasMore)
	assert.Equal(t, 5, p.From)
	assert.Equal(t, 5, p.To)

	page, p = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Zero(t, p.From)
	assert.Zero(t, p.To)
}

func TestPaginate_Empty(t *testing.T) {
	page, p := Paginate([]string{}, 1, 20)
	assert.Empty(t, page)
	assert.Zero(t, p.TotalPages)
	assert.False(t, p.HasMore)
}

func TestParsePage(t *testing.T) {
	page, size := ParsePage("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = ParsePage("3", "500")
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, size)

	page, size = ParsePage("-2", "abc")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionIDFrom(ctx))
	assert.Equal(t, "abc", SessionIDFrom(WithSessionID(ctx, "abc")))
}
