package search

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/team-management-api/internal/constants"
)

// ErrQueryTooLong is returned for queries longer than constants.MaxQueryLength.
var ErrQueryTooLong = errors.New("search query is too long")

// Query is a validated free-text search term. The zero value is the absent query.
type Query struct {
	text string
}

// ParseQuery trims the raw input and validates its length. On error the
// returned Query is absent, so callers may ignore the error and still get the
// unranked base collection.
func ParseQuery(raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) > constants.MaxQueryLength {
		return Query{}, ErrQueryTooLong
	}
	return Query{text: text}, nil
}

// IsEmpty reports whether the query is absent.
func (q Query) IsEmpty() bool {
	return q.text == ""
}

func (q Query) String() string {
	return q.text
}
