package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWithPaginationMeta(t *testing.T) {
	resp := SuccessWithPagination(200, []int{1, 2, 3}, 2, 20, 45)

	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.Limit)
	assert.EqualValues(t, 45, resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages, "45 rows at 20 per page fill three pages")
	assert.Equal(t, "success", resp.Status)
}

func TestSuccessWithPaginationEmpty(t *testing.T) {
	resp := SuccessWithPagination(200, nil, 1, 20, 0)

	require.NotNil(t, resp.Meta)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestErrorOmitsMeta(t *testing.T) {
	resp := Error(404, "not found")

	assert.Equal(t, "error", resp.Status)
	assert.Nil(t, resp.Meta)
	assert.Equal(t, "not found", resp.Error)
}
