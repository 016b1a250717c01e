package listing

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpec = Spec{
	SearchColumns:      []string{"company_name", "job_role"},
	SearchArrayColumns: []string{"tags"},
	ExactFilters: map[string]string{
		"jobType": "job_type",
	},
	SubstringFilters: map[string]string{
		"company": "company_name",
	},
	SortColumns: map[string]string{
		"startDate": "start_date",
		"createdAt": "created_at",
	},
	DefaultSortColumn: "start_date",
	DefaultSortOrder:  "ASC",
	DefaultLimit:      10,
}

func newTestContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(newTestContext(""), testSpec)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "", q.Search)
	assert.Equal(t, "start_date", q.SortColumn)
	assert.Equal(t, "ASC", q.SortOrder)
	assert.Empty(t, q.Exact)
	assert.Empty(t, q.Substring)
}

func TestParseQueryClampsMalformedValues(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantPage  int
		wantLimit int
	}{
		{"non-numeric page", "page=abc&limit=20", 1, 20},
		{"non-numeric limit", "page=3&limit=xyz", 3, 10},
		{"zero page", "page=0", 1, 10},
		{"negative page", "page=-5", 1, 10},
		{"negative limit", "limit=-1", 1, 1},
		{"limit above cap", "limit=5000", 1, MaxLimit},
		{"valid values", "page=4&limit=25", 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(newTestContext(tt.rawQuery), testSpec)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestParseQuerySortWhitelist(t *testing.T) {
	q := ParseQuery(newTestContext("sortBy=createdAt&sortOrder=desc"), testSpec)
	assert.Equal(t, "created_at", q.SortColumn)
	assert.Equal(t, "DESC", q.SortOrder)

	// Unknown sort fields fall back silently instead of failing the request
	q = ParseQuery(newTestContext("sortBy=passwordHash"), testSpec)
	assert.Equal(t, "start_date", q.SortColumn)

	// Garbage sort order keeps the default
	q = ParseQuery(newTestContext("sortOrder=sideways"), testSpec)
	assert.Equal(t, "ASC", q.SortOrder)
}

func TestParseQueryResolvesFilterColumns(t *testing.T) {
	q := ParseQuery(newTestContext("jobType=Full-Time&company=acme"), testSpec)

	assert.Equal(t, "Full-Time", q.Exact["job_type"])
	assert.Equal(t, "acme", q.Substring["company_name"])
}

func TestWhereUnconstrained(t *testing.T) {
	q := ParseQuery(newTestContext(""), testSpec)
	assert.Nil(t, Where(testSpec, q))
}

func TestWhereSearchSpansColumnsAndArrays(t *testing.T) {
	q := ParseQuery(newTestContext("search=acme"), testSpec)

	pred := Where(testSpec, q)
	require.NotNil(t, pred)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "company_name ILIKE ?")
	assert.Contains(t, sql, "job_role ILIKE ?")
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM unnest(tags) AS el WHERE el ILIKE ?)")
	// Search term is ORed across columns, so every placeholder carries it
	for _, arg := range args {
		assert.Equal(t, "%acme%", arg)
	}
}

func TestWhereCombinesSearchAndFilters(t *testing.T) {
	q := ParseQuery(newTestContext("search=swe&jobType=Internship&company=acme"), testSpec)

	sql, args, err := Where(testSpec, q).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "job_type = ?")
	assert.Contains(t, sql, "company_name ILIKE ?")
	assert.Contains(t, args, "Internship")
	assert.Contains(t, args, "%acme%")
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), Query{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, uint64(20), Query{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, uint64(24), Query{Page: 3, Limit: 12}.Offset())
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		limit     int
		wantPages int
	}{
		{"empty result set", 0, 1, 10, 0},
		{"exact fit", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"single page", 5, 1, 10, 1},
		{"page beyond range keeps requested page", 5, 9, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.total, Query{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.page, info.CurrentPage)
			assert.Equal(t, tt.total, info.Total)
		})
	}
}
