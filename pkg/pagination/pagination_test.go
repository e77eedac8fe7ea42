package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 1000}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 25)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 10, 0)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)
}

func TestPaginate(t *testing.T) {
	var gotOffset, gotLimit int
	res, err := Paginate(&PaginationParams{Page: 2, PerPage: 5}, func(p *PaginationParams) ([]string, int64, error) {
		gotOffset, gotLimit = p.Offset(), p.PerPage
		return nil, 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, gotOffset)
	assert.Equal(t, 5, gotLimit)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(7), res.Pagination.Total)
}

func TestPaginateNilParams(t *testing.T) {
	var got *PaginationParams
	_, err := Paginate(nil, func(p *PaginationParams) ([]int, int64, error) {
		got = p
		return []int{1}, 1, nil
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 15, got.PerPage)
}
