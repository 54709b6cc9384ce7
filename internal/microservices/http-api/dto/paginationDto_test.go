package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	all := []int{10, 20, 30, 40, 50}

	page := Paginate(all, 0, 2)
	assert.Equal(t, []int{10, 20}, page.Items)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.Limit)

	page = Paginate(all, 2, 2)
	assert.Equal(t, []int{50}, page.Items)
	assert.Equal(t, 5, page.Total)
}

func TestPaginate_BeyondRange(t *testing.T) {
	page := Paginate([]int{1, 2, 3}, 9, 10)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
}

func TestPaginate_EmptyInput(t *testing.T) {
	page := Paginate([]string(nil), 0, 10)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}
