package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/metrics"
	"github.com/yukikurage/team-management-api/internal/search"
	"github.com/yukikurage/team-management-api/internal/utils"
	"github.com/yukikurage/team-management-api/internal/validation"
)

// ErrIntegrity is returned when the database rejects a write that passed
// validation, usually because a concurrent request won a unique constraint.
var ErrIntegrity = errors.New("integrity constraint violated")

// integrityOr wraps storage constraint violations in ErrIntegrity and
// everything else with the given context message.
func integrityOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Notice is a user-facing message produced by a successful operation.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func success(message string) Notice {
	return Notice{Level: "success", Message: message}
}

// ListInput holds the query parameters shared by every list view.
type ListInput struct {
	Query      string
	Pagination utils.PaginationParams
}

// ListResult is one page of a searched list.
type ListResult[T any] struct {
	utils.Page[T]
	Query string
}

// searchPage ranks items by the query and slices the requested page. An
// invalid query is treated as absent.
func searchPage[T any](items []T, input ListInput, d search.Descriptor[T]) ListResult[T] {
	q, err := search.ParseQuery(input.Query)
	if err != nil {
		q = search.Query{}
	}
	if !q.IsEmpty() {
		metrics.SearchQuery(d.Entity)
	}

	ranked := search.Rank(items, q, d)
	return ListResult[T]{
		Page:  utils.Paginate(ranked.Items(), input.Pagination),
		Query: q.String(),
	}
}

// uniqueUint64 removes duplicate IDs while preserving their order
func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// requireAll adds a field error when any of ids does not exist.
func requireAll(ctx context.Context, errs validation.Errors, field string, ids []uint64, count func(context.Context, []uint64) (int64, error)) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := count(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", field, err)
	}
	if int(n) != len(ids) {
		errs.Add(field, "Select a valid choice. One or more of the selected items does not exist.")
	}
	return nil
}
