package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListQuery carries pagination, filtering and sorting for list reads.
// Page is 1-indexed. Search matches case-insensitively against the
// repository's whitelisted columns. SortBy must be one of the whitelisted
// columns; handlers validate this before it gets here, and the repositories
// refuse unknown columns again rather than passing them to the query layer.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDir  string // asc or desc
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// normalized returns the query with page and size clamped into bounds.
func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.SortDir != "desc" {
		q.SortDir = "asc"
	}
	return q
}

func (q ListQuery) offset() int { return (q.Page - 1) * q.PageSize }

// applyList scopes tx with the search filter and sort for the given column
// whitelists; callers apply Limit/Offset from the normalized query it
// returns. A sort column outside the whitelist is an error, never
// interpolated into SQL.
func applyList(tx *gorm.DB, q ListQuery, searchable []string, sortable map[string]bool) (*gorm.DB, ListQuery, error) {
	q = q.normalized()

	if q.Search != "" && len(searchable) > 0 {
		needle := "%" + strings.ToLower(q.Search) + "%"
		conds := make([]string, 0, len(searchable))
		args := make([]any, 0, len(searchable))
		for _, col := range searchable {
			conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, needle)
		}
		tx = tx.Where(strings.Join(conds, " OR "), args...)
	}

	if q.SortBy != "" {
		if !sortable[q.SortBy] {
			return nil, q, fmt.Errorf("unknown sort column %q", q.SortBy)
		}
		tx = tx.Order(q.SortBy + " " + q.SortDir)
	} else {
		tx = tx.Order("created_at desc")
	}

	return tx, q, nil
}
