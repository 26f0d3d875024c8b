// Package slug derives unique, URL-safe identifiers for entities.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// MaxLength matches the width of the slug columns.
const MaxLength = 255

const (
	fallback    = "item"
	maxAttempts = 1000
)

// ErrExhausted is returned when no free candidate was found.
var ErrExhausted = errors.New("slug: no unique candidate available")

// ExistsFunc reports whether a candidate is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Make turns the source fields into a slug without checking uniqueness.
func Make(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	s := gosimple.Make(strings.Join(nonEmpty, " "))
	if s == "" {
		return fallback
	}
	return truncate(s, MaxLength-8)
}

// Unique returns the first free candidate of base, base-2, base-3, ...
func Unique(ctx context.Context, exists ExistsFunc, parts ...string) (string, error) {
	base := Make(parts...)

	candidate := base
	for i := 2; i <= maxAttempts+1; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", ErrExhausted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}
