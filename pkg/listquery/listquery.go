// Package listquery builds the list query shared by every "list X" endpoint:
// pagination, equality/range filters, sorting, substring search, and field
// projection, composed in the fixed order
// Paginate -> Filter -> [Sort -> Search -> Select].
package listquery

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage = 1
	DefaultSize = 5
)

// Reserved query keys that never become filters.
var reservedKeys = map[string]bool{
	"sort":      true,
	"page":      true,
	"size":      true,
	"fields":    true,
	"searchKey": true,
}

// range operators accepted inside bracketed keys, e.g. age[gte]=18
var rangeOps = map[string]string{
	"lt":  "<",
	"lte": "<=",
	"gt":  ">",
	"gte": ">=",
}

var bracketKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(lt|lte|gt|gte)\]$`)

// Page is the pagination block returned alongside list results.
//
// TotalDocuments counts the whole table, not the filtered subset; the
// original behaves the same way and callers depend on the shape.
type Page struct {
	TotalDocuments int  `json:"totalDocuments"`
	TotalPages     int  `json:"totalPages"`
	Next           *int `json:"nextPage"`
	Previous       *int `json:"prevPage"`
	CurrentPage    int  `json:"currentPage"`
	ResultsPerPage int  `json:"resultsPerPage"`
}

// Builder assembles one SELECT over a single table. Column names from the
// raw query are only ever used when they appear in the allowed set, so user
// input never reaches SQL identifiers.
type Builder struct {
	table   string
	raw     url.Values
	allowed map[string]bool

	where   []string
	args    []any
	order   []string
	project []string

	skip  int
	limit int

	page Page
}

// New builds a Builder for table. columns is the full set of projectable /
// filterable / sortable column names; the first entries double as the
// default projection.
func New(table string, raw url.Values, columns ...string) *Builder {
	allowed := make(map[string]bool, len(columns))
	for _, c := range columns {
		allowed[c] = true
	}
	return &Builder{
		table:   table,
		raw:     raw,
		allowed: allowed,
		project: columns,
		limit:   DefaultSize,
	}
}

func (b *Builder) intParam(key string, def int) int {
	v := b.raw.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Paginate computes skip/limit from the page/size params and derives the
// page block from total, the caller-supplied whole-table count.
func (b *Builder) Paginate(total int) *Builder {
	page := b.intParam("page", DefaultPage)
	size := b.intParam("size", DefaultSize)

	b.skip = size * (page - 1)
	b.limit = size

	totalPages := (total + size - 1) / size
	b.page = Page{
		TotalDocuments: total,
		TotalPages:     totalPages,
		CurrentPage:    page,
		ResultsPerPage: size,
	}
	if totalPages > page {
		next := page + 1
		b.page.Next = &next
	}
	if page > 1 {
		prev := page - 1
		b.page.Previous = &prev
	}
	return b
}

// Filter turns the remaining query params into predicates: bracketed keys
// become range comparisons, everything else equality. Unknown columns are
// dropped.
func (b *Builder) Filter() *Builder {
	keys := make([]string, 0, len(b.raw))
	for k := range b.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if reservedKeys[key] {
			continue
		}
		vals := b.raw[key]
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		col, op := key, "="
		if m := bracketKey.FindStringSubmatch(key); m != nil {
			col, op = m[1], rangeOps[m[2]]
		}
		if !b.allowed[col] {
			continue
		}
		b.args = append(b.args, vals[0])
		b.where = append(b.where, fmt.Sprintf("%s %s $%d", col, op, len(b.args)))
	}
	return b
}

// Sort applies the comma-separated sort param; a leading '-' flips the
// direction. No-op when absent.
func (b *Builder) Sort() *Builder {
	raw := b.raw.Get("sort")
	if raw == "" {
		return b
	}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			f = f[1:]
			dir = "DESC"
		}
		if !b.allowed[f] {
			continue
		}
		b.order = append(b.order, f+" "+dir)
	}
	return b
}

// Search applies a case-insensitive substring match of the searchKey param
// over the given text columns. No-op when absent.
func (b *Builder) Search(textColumns ...string) *Builder {
	key := b.raw.Get("searchKey")
	if key == "" || len(textColumns) == 0 {
		return b
	}
	b.args = append(b.args, "%"+key+"%")
	n := len(b.args)
	parts := make([]string, 0, len(textColumns))
	for _, c := range textColumns {
		if !b.allowed[c] {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", c, n))
	}
	if len(parts) > 0 {
		b.where = append(b.where, "("+strings.Join(parts, " OR ")+")")
	}
	return b
}

// Select narrows the projection to the comma-separated fields param.
// Unknown columns are dropped; no-op when absent or nothing survives.
func (b *Builder) Select() *Builder {
	raw := b.raw.Get("fields")
	if raw == "" {
		return b
	}
	cols := make([]string, 0)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if b.allowed[f] {
			cols = append(cols, f)
		}
	}
	if len(cols) > 0 {
		b.project = cols
	}
	return b
}

// Page returns the pagination block computed by Paginate.
func (b *Builder) Page() Page { return b.page }

// Columns returns the active projection.
func (b *Builder) Columns() []string { return b.project }

// SQL renders the final statement and its arguments.
func (b *Builder) SQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.project, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if len(b.order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.order, ", "))
	}
	sb.WriteString(fmt.Sprintf(" OFFSET %d LIMIT %d", b.skip, b.limit))
	return sb.String(), b.args
}
