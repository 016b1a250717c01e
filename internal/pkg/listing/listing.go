// Package listing implements the shared pagination/search/filter/sort layer
// used by every list-style resource. Each resource contributes a Spec; the
// request side is reduced to a typed Query by a single permissive
// parse-and-clamp step, so malformed query strings degrade gracefully
// instead of producing 400s.
package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
)

const (
	// DefaultPage is the 1-based first page
	DefaultPage = 1
	// MaxLimit caps the page size regardless of what the client asks for
	MaxLimit = 100
)

// Spec describes how one resource collection is listed.
type Spec struct {
	// SearchColumns are matched with a case-insensitive substring
	// (logical OR: matching any one column is sufficient).
	SearchColumns []string
	// SearchArrayColumns are array-valued columns searched element-wise.
	SearchArrayColumns []string
	// ExactFilters maps query parameter names to columns filtered by equality.
	ExactFilters map[string]string
	// SubstringFilters maps query parameter names to columns filtered by
	// case-insensitive substring (looser than ExactFilters on purpose).
	SubstringFilters map[string]string
	// SortColumns whitelists sortBy parameter values and maps them to columns.
	SortColumns map[string]string

	DefaultSortColumn string
	DefaultSortOrder  string // "ASC" or "DESC"
	DefaultLimit      int
}

// Query is the typed, already-clamped view of the list request parameters.
type Query struct {
	Page       int
	Limit      int
	Search     string
	SortColumn string
	SortOrder  string
	// Exact and Substring are keyed by column name, resolved via the Spec.
	Exact     map[string]string
	Substring map[string]string
}

// ParseQuery extracts list parameters from the request. It never fails:
// unparseable page/limit values fall back to defaults, out-of-range values
// are clamped, and an unrecognized sortBy silently sorts by the default
// column. This leniency is deliberate and matches the portal's observed
// behavior; consumers wanting strict validation should do it before calling.
func ParseQuery(c *gin.Context, spec Spec) Query {
	q := Query{
		Search:     strings.TrimSpace(c.Query("search")),
		SortColumn: spec.DefaultSortColumn,
		SortOrder:  normalizeOrder(spec.DefaultSortOrder),
		Exact:      make(map[string]string),
		Substring:  make(map[string]string),
	}

	q.Page = parseClamped(c.Query("page"), DefaultPage)
	q.Limit = parseClamped(c.Query("limit"), spec.DefaultLimit)
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if sortBy := c.Query("sortBy"); sortBy != "" {
		if col, ok := spec.SortColumns[sortBy]; ok {
			q.SortColumn = col
		}
	}
	if order := c.Query("sortOrder"); order != "" {
		switch strings.ToUpper(order) {
		case "ASC":
			q.SortOrder = "ASC"
		case "DESC":
			q.SortOrder = "DESC"
		}
	}

	for param, col := range spec.ExactFilters {
		if v := c.Query(param); v != "" {
			q.Exact[col] = v
		}
	}
	for param, col := range spec.SubstringFilters {
		if v := c.Query(param); v != "" {
			q.Substring[col] = v
		}
	}

	return q
}

// parseClamped parses a positive integer, falling back to def when the value
// is absent or malformed and clamping zero/negative values to 1.
func parseClamped(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}

func normalizeOrder(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// Offset returns the number of rows to skip for the current page.
func (q Query) Offset() uint64 {
	return uint64((q.Page - 1) * q.Limit)
}

// Where builds the combined predicate for a query against a spec: the search
// term ORed across all searchable columns, ANDed with every active filter.
// Returns nil when the query is unconstrained.
func Where(spec Spec, q Query) squirrel.Sqlizer {
	and := squirrel.And{}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		or := squirrel.Or{}
		for _, col := range spec.SearchColumns {
			or = append(or, squirrel.ILike{col: pattern})
		}
		for _, col := range spec.SearchArrayColumns {
			// Element-wise match for array-valued columns such as tags.
			or = append(or, squirrel.Expr(
				"EXISTS (SELECT 1 FROM unnest("+col+") AS el WHERE el ILIKE ?)", pattern))
		}
		if len(or) > 0 {
			and = append(and, or)
		}
	}

	for col, val := range q.Exact {
		and = append(and, squirrel.Eq{col: val})
	}
	for col, val := range q.Substring {
		and = append(and, squirrel.ILike{col: "%" + strings.TrimSpace(val) + "%"})
	}

	if len(and) == 0 {
		return nil
	}
	return and
}

// OrderAndPage applies sorting and pagination to a select builder. Ties on
// the sort key keep the store's natural order; no secondary key is added.
func OrderAndPage(sb squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	return sb.OrderBy(q.SortColumn + " " + q.SortOrder).
		Limit(uint64(q.Limit)).
		Offset(q.Offset())
}

// PageInfo is the pagination metadata returned alongside every page.
type PageInfo struct {
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Total       int64 `json:"total"`
}

// NewPageInfo computes pagination metadata for a result set of size total.
func NewPageInfo(total int64, q Query) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	return PageInfo{
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		Total:       total,
	}
}
