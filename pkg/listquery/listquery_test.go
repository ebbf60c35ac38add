package listquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Add(pairs[i], pairs[i+1])
	}
	return v
}

func TestPaginateDefaults(t *testing.T) {
	b := New("users", values()).Paginate(12)

	sql, args := b.SQL()
	assert.Contains(t, sql, "OFFSET 0 LIMIT 5")
	assert.Empty(t, args)

	page := b.Page()
	assert.Equal(t, 12, page.TotalDocuments)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 5, page.ResultsPerPage)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)
	assert.Nil(t, page.Previous)
}

func TestPaginateLastPage(t *testing.T) {
	b := New("users", values("page", "3", "size", "5")).Paginate(12)

	sql, _ := b.SQL()
	assert.Contains(t, sql, "OFFSET 10 LIMIT 5")

	page := b.Page()
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, 2, *page.Previous)
}

func TestPaginateBadParamsFallBack(t *testing.T) {
	b := New("users", values("page", "zero", "size", "-4")).Paginate(12)
	page := b.Page()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 5, page.ResultsPerPage)
}

func TestFilterEqualityAndRanges(t *testing.T) {
	raw := values("role", "USER", "age[gte]", "18", "age[lt]", "65", "page", "2")
	b := New("users", raw, "id", "role", "age").Paginate(0).Filter()

	sql, args := b.SQL()
	assert.Contains(t, sql, "age >= $1")
	assert.Contains(t, sql, "age < $2")
	assert.Contains(t, sql, "role = $3")
	assert.Equal(t, []any{"18", "65", "USER"}, args)
}

func TestFilterDropsUnknownColumns(t *testing.T) {
	raw := values("role", "USER", "password", "x", "evil[gte]", "1")
	b := New("users", raw, "id", "role").Paginate(0).Filter()

	sql, args := b.SQL()
	assert.NotContains(t, sql, "password")
	assert.NotContains(t, sql, "evil")
	assert.Equal(t, []any{"USER"}, args)
}

func TestSort(t *testing.T) {
	raw := values("sort", "-created_at,name,bogus")
	b := New("users", raw, "id", "name", "created_at").Paginate(0).Filter().Sort()

	sql, _ := b.SQL()
	assert.Contains(t, sql, "ORDER BY created_at DESC, name ASC")
	assert.NotContains(t, sql, "bogus")
}

func TestSearch(t *testing.T) {
	raw := values("searchKey", "ann")
	b := New("users", raw, "id", "name", "email").Paginate(0).Filter().Sort().Search("name", "email")

	sql, args := b.SQL()
	assert.Contains(t, sql, "(name ILIKE $1 OR email ILIKE $1)")
	assert.Equal(t, []any{"%ann%"}, args)
}

func TestSelectProjection(t *testing.T) {
	raw := values("fields", "name,email,password")
	b := New("users", raw, "id", "name", "email").Paginate(0).Filter().Sort().Search("name").Select()

	assert.Equal(t, []string{"name", "email"}, b.Columns())
	sql, _ := b.SQL()
	assert.Contains(t, sql, "SELECT name, email FROM users")
}

func TestComposedQuery(t *testing.T) {
	raw := values(
		"page", "2",
		"size", "10",
		"role", "USER",
		"sort", "-created_at",
		"searchKey", "ann",
		"fields", "id,name",
	)
	b := New("users", raw, "id", "name", "email", "role", "created_at").
		Paginate(42).Filter().Sort().Search("name", "email").Select()

	sql, args := b.SQL()
	assert.Equal(t, "SELECT id, name FROM users WHERE role = $1 AND (name ILIKE $2 OR email ILIKE $2) ORDER BY created_at DESC OFFSET 10 LIMIT 10", sql)
	assert.Equal(t, []any{"USER", "%ann%"}, args)

	page := b.Page()
	assert.Equal(t, 42, page.TotalDocuments)
	assert.Equal(t, 5, page.TotalPages)
}
