// Package pagination turns an unbounded gorm query into a bounded, ordered,
// optionally-searched page envelope with total counts.
package pagination

import (
	"fmt"
	"regexp"
	"strings"

	"blog-app/internal/domain/apperr"

	"gorm.io/gorm"
)

var (
	// DefaultLimit applies when the caller passes no page size; MaxLimit is
	// the hard ceiling (overwritten from config at startup).
	DefaultLimit = 10
	MaxLimit     = 100
)

var columnName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Searchable is implemented by entity types that support free-text search,
// returning the column names search terms are matched against.
type Searchable interface {
	SearchColumns() []string
}

// Params are the declarative knobs for a single page request. Filter, if set,
// narrows the query before search and counting. SearchTerms non-nil means the
// caller requested search; at least one non-empty term is then required.
type Params struct {
	Page          int
	Limit         int
	SortColumn    string
	SortDirection string
	SearchTerms   []string
	Filter        func(*gorm.DB) *gorm.DB
}

// Page is the envelope returned to callers.
type Page[T any] struct {
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	Data         []T   `json:"data"`
}

// GetPage applies filter, search, count, clamp, sort and offset/limit in that
// order and materializes one page of T.
//
// Ordering subtleties carried deliberately:
//   - a zero-record result short-circuits before sort/offset/limit run;
//   - the requested page is clamped to the last page before the offset is
//     computed, so an over-large page returns the last page's data rather
//     than an empty slice;
//   - sort direction defaults to descending; only the exact string "asc"
//     sorts ascending.
func GetPage[T any](db *gorm.DB, p Params) (Page[T], error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var model T
	base := db.Model(&model)
	if p.Filter != nil {
		base = p.Filter(base)
	}

	if p.SearchTerms != nil {
		clause, args, err := searchClause[T](p.SearchTerms)
		if err != nil {
			return Page[T]{}, err
		}
		base = base.Where(clause, args...)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, apperr.ErrOperationFailed
	}

	if total == 0 {
		return Page[T]{Page: page, Limit: limit, TotalPages: 0, TotalRecords: 0, Data: []T{}}, nil
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if page > totalPages {
		page = totalPages
	}

	query := base.Session(&gorm.Session{})
	if p.SortColumn != "" && columnName.MatchString(p.SortColumn) {
		direction := "DESC"
		if p.SortDirection == "asc" {
			direction = "ASC"
		}
		query = query.Order(fmt.Sprintf("%s %s", p.SortColumn, direction))
	}

	data := []T{}
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&data).Error; err != nil {
		return Page[T]{}, apperr.ErrOperationFailed
	}

	return Page[T]{
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalRecords: total,
		Data:         data,
	}, nil
}

// searchClause builds a case-insensitive OR of every (column, term) pair.
// Matching is substring, lower-cased on both sides, so the case policy is
// fixed regardless of backend collation.
func searchClause[T any](terms []string) (string, []interface{}, error) {
	var model T
	searchable, ok := any(model).(Searchable)
	if !ok || len(searchable.SearchColumns()) == 0 {
		return "", nil, apperr.ErrSearchColumnsNotDefined
	}

	usable := make([]string, 0, len(terms))
	for _, t := range terms {
		if s := strings.TrimSpace(t); s != "" {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return "", nil, apperr.ErrSearchNoValues
	}

	var parts []string
	var args []interface{}
	for _, col := range searchable.SearchColumns() {
		for _, term := range usable {
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, "%"+strings.ToLower(term)+"%")
		}
	}
	return strings.Join(parts, " OR "), args, nil
}
