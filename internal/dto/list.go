package dto

import "github.com/yukikurage/team-management-api/internal/utils"

// ListResponse is the envelope of every searchable list endpoint
type ListResponse[T any] struct {
	Items      []T                      `json:"items"`
	Query      string                   `json:"query"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToListResponse converts a page of models with the given item converter
func ToListResponse[M, T any](page utils.Page[M], query string, convert func(M) T) ListResponse[T] {
	items := make([]T, len(page.Items))
	for i, item := range page.Items {
		items[i] = convert(item)
	}
	return ListResponse[T]{
		Items:      items,
		Query:      query,
		Pagination: page.Pagination,
	}
}

// Map converts a slice of models, never returning nil so JSON renders [].
func Map[M, T any](items []M, convert func(M) T) []T {
	out := make([]T, len(items))
	for i, m := range items {
		out[i] = convert(m)
	}
	return out
}
