package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset is the index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	IsPaginated bool `json:"is_paginated"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Page is one slice of an ordered collection plus its metadata.
type Page[T any] struct {
	Items      []T
	Pagination PaginationResponse
}

// GetPaginationParams reads the page number from the request. A missing,
// malformed or non-positive page resolves to the first page.
func GetPaginationParams(c *gin.Context) PaginationParams {
	return NewPaginationParams(c.Query("page"), constants.PageSize)
}

func NewPaginationParams(rawPage string, limit int) PaginationParams {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < constants.MinPage {
		page = constants.MinPage
	}
	if limit < constants.MinPageSize {
		limit = constants.PageSize
	}

	return PaginationParams{Page: page, Limit: limit}
}

// Paginate returns the requested page of items. A page past the end yields
// no items and is not an error.
func Paginate[T any](items []T, params PaginationParams) Page[T] {
	if params.Page < constants.MinPage || params.Limit < constants.MinPageSize {
		params = NewPaginationParams(strconv.Itoa(params.Page), params.Limit)
	}

	total := len(items)
	totalPages := (total + params.Limit - 1) / params.Limit

	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)

	return Page[T]{
		Items: items[start:end:end],
		Pagination: PaginationResponse{
			Page:        params.Page,
			PageSize:    params.Limit,
			TotalCount:  total,
			TotalPages:  totalPages,
			IsPaginated: totalPages > 1,
			HasNext:     params.Page < totalPages,
			HasPrevious: params.Page > 1,
		},
	}
}
