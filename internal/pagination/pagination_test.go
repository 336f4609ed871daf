package pagination

import (
	"fmt"
	"testing"

	"blog-app/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type article struct {
	ID      uint `gorm:"primaryKey"`
	Title   string
	Content string
	Rank    int
}

func (article) SearchColumns() []string {
	return []string{"title", "content"}
}

// plainRow has no searchable columns configured.
type plainRow struct {
	ID uint `gorm:"primaryKey"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&article{}, &plainRow{}))
	return db
}

func seedArticles(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&article{
			Title:   fmt.Sprintf("Article %d", i),
			Content: fmt.Sprintf("body %d", i),
			Rank:    i,
		}).Error)
	}
}

func TestGetPageClampsToLastPage(t *testing.T) {
	db := newTestDB(t)
	seedArticles(t, db, 25)

	// 25 records, limit 10, page 5 -> clamps to page 3 with records 21-25
	page, err := GetPage[article](db, Params{Page: 5, Limit: 10, SortColumn: "rank", SortDirection: "asc"})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalRecords)
	require.Len(t, page.Data, 5)
	assert.Equal(t, 21, page.Data[0].Rank)
	assert.Equal(t, 25, page.Data[4].Rank)
}

func TestGetPageEmptyResultShortCircuits(t *testing.T) {
	db := newTestDB(t)

	page, err := GetPage[article](db, Params{Page: 7, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 7, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, int64(0), page.TotalRecords)
	assert.Empty(t, page.Data)
}

func TestGetPageDefaultSortIsDescending(t *testing.T) {
	db := newTestDB(t)
	seedArticles(t, db, 5)

	// no direction given -> descending
	page, err := GetPage[article](db, Params{Page: 1, Limit: 10, SortColumn: "rank"})
	require.NoError(t, err)
	require.Len(t, page.Data, 5)
	assert.Equal(t, 5, page.Data[0].Rank)
	assert.Equal(t, 1, page.Data[4].Rank)

	// only the exact string "asc" sorts ascending; "ASC" does not count
	page, err = GetPage[article](db, Params{Page: 1, Limit: 10, SortColumn: "rank", SortDirection: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Data[0].Rank)

	page, err = GetPage[article](db, Params{Page: 1, Limit: 10, SortColumn: "rank", SortDirection: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Data[0].Rank)
}

func TestGetPageSearchMatchesAnyTermAcrossColumns(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&article{Title: "My cat diary", Content: "feline notes", Rank: 1}).Error)
	require.NoError(t, db.Create(&article{Title: "Gardening", Content: "the DOG dug it up", Rank: 2}).Error)
	require.NoError(t, db.Create(&article{Title: "Cooking", Content: "nothing here", Rank: 3}).Error)

	page, err := GetPage[article](db, Params{Page: 1, Limit: 10, SearchTerms: []string{"cat", "dog"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalRecords)

	// matching is case-insensitive in both directions: upper-cased terms hit
	// lower-cased columns and vice versa
	page, err = GetPage[article](db, Params{Page: 1, Limit: 10, SearchTerms: []string{"CAT"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalRecords)

	page, err = GetPage[article](db, Params{Page: 1, Limit: 10, SearchTerms: []string{"dog"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalRecords)
}

func TestGetPageSearchWithoutUsableTerms(t *testing.T) {
	db := newTestDB(t)
	seedArticles(t, db, 3)

	_, err := GetPage[article](db, Params{Page: 1, Limit: 10, SearchTerms: []string{"", "   "}})
	assert.ErrorIs(t, err, apperr.ErrSearchNoValues)
}

func TestGetPageSearchColumnsNotDefined(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&plainRow{}).Error)

	_, err := GetPage[plainRow](db, Params{Page: 1, Limit: 10, SearchTerms: []string{"anything"}})
	assert.ErrorIs(t, err, apperr.ErrSearchColumnsNotDefined)
}

func TestGetPageFilterAppliesBeforeCount(t *testing.T) {
	db := newTestDB(t)
	seedArticles(t, db, 10)

	page, err := GetPage[article](db, Params{
		Page:  1,
		Limit: 3,
		Filter: func(q *gorm.DB) *gorm.DB {
			return q.Where("rank > ?", 4)
		},
		SortColumn:    "rank",
		SortDirection: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.TotalRecords)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 3)
	assert.Equal(t, 5, page.Data[0].Rank)
}

func TestGetPageLimitBounds(t *testing.T) {
	db := newTestDB(t)
	seedArticles(t, db, 5)

	// zero limit falls back to the default
	page, err := GetPage[article](db, Params{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, page.Limit)

	// an oversized limit is clamped to the ceiling
	page, err = GetPage[article](db, Params{Page: 1, Limit: MaxLimit + 500})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, page.Limit)

	// a non-positive page is normalized to 1
	page, err = GetPage[article](db, Params{Page: -3, Limit: 2, SortColumn: "rank", SortDirection: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Data[0].Rank)
}
