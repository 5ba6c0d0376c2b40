package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"
)

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// uniqueSlug slugifies name and, on collision in table.slug, appends a
// short random suffix until the slug is free.
func uniqueSlug(ctx context.Context, q queryRower, table, name string) (string, error) {
	base := slugify(name)
	slug := base
	for {
		var exists bool
		query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE slug = $1)", table)
		if err := q.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
			return "", fmt.Errorf("check slug collision: %w", err)
		}
		if !exists {
			return slug, nil
		}
		suffix, err := randomCode(6)
		if err != nil {
			return "", err
		}
		slug = base + "-" + strings.ToLower(suffix)
	}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
