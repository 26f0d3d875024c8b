package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
	}{
		{name: "missing", query: "", wantPage: 1},
		{name: "valid", query: "?page=3", wantPage: 3},
		{name: "not a number", query: "?page=abc", wantPage: 1},
		{name: "zero", query: "?page=0", wantPage: 1},
		{name: "negative", query: "?page=-2", wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/api/employees"+tt.query, nil)

			params := GetPaginationParams(c)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, 5, params.Limit)
			assert.Equal(t, (tt.wantPage-1)*5, params.Offset())
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	first := Paginate(items, NewPaginationParams("1", 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, first.Items)
	assert.Equal(t, PaginationResponse{
		Page: 1, PageSize: 5, TotalCount: 7, TotalPages: 2,
		IsPaginated: true, HasNext: true, HasPrevious: false,
	}, first.Pagination)

	second := Paginate(items, NewPaginationParams("2", 5))
	assert.Equal(t, []int{6, 7}, second.Items)
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrevious)
}

func TestPaginate_PastTheEnd(t *testing.T) {
	page := Paginate([]string{"a", "b"}, NewPaginationParams("9", 5))
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Pagination.TotalCount)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.IsPaginated)
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]string{}, NewPaginationParams("", 5))
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
}

// Concatenating every page reproduces the collection with nothing lost or repeated.
func TestProperty_PagesReassemble(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 60).Draw(t, "n")
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		first := Paginate(items, NewPaginationParams("1", 5))
		var joined []int
		for p := 1; p <= first.Pagination.TotalPages; p++ {
			page := Paginate(items, PaginationParams{Page: p, Limit: 5})
			if len(page.Items) > 5 {
				t.Fatalf("page %d has %d items", p, len(page.Items))
			}
			joined = append(joined, page.Items...)
		}

		if len(joined) != n {
			t.Fatalf("reassembled %d items, want %d", len(joined), n)
		}
		for i, v := range joined {
			if v != i {
				t.Fatalf("position %d holds %d", i, v)
			}
		}
	})
}

func TestPaginate_ZeroParams(t *testing.T) {
	page := Paginate([]int{1, 2, 3, 4, 5, 6}, PaginationParams{})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page.Items)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 5, page.Pagination.PageSize)
}

func TestPaginate_HandBuiltParams(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	second := Paginate(items, PaginationParams{Page: 2, Limit: 5})
	assert.Equal(t, []int{6, 7}, second.Items)
	assert.Equal(t, 2, second.Pagination.Page)

	negative := Paginate(items, PaginationParams{Page: -3, Limit: 5})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, negative.Items)
	assert.Equal(t, 1, negative.Pagination.Page)

	small := Paginate(items, PaginationParams{Page: 3, Limit: 3})
	assert.Equal(t, []int{7}, small.Items)
	assert.Equal(t, 3, small.Pagination.TotalPages)
}
