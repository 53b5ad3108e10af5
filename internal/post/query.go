package post

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortColumns maps the field names clients may sort by to table columns.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"desc":      "description",
	"tag":       "tag",
	"imageUrl":  "image_url",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// postColumns is the select list matching scanPost.
const postColumns = "id, title, description, tag, image_url, created_at, updated_at"

// Sort is a validated ORDER BY column and direction.
type Sort struct {
	Column string
	Desc   bool
}

// DefaultSort lists newest posts first.
var DefaultSort = Sort{Column: "created_at", Desc: true}

// ListQuery narrows, orders and pages a post listing.
type ListQuery struct {
	Keyword string // case-insensitive substring of title or desc
	Tag     string // exact tag
	Page    int    // 1-based
	Limit   int
	Sort    Sort
}

// Offset is the number of matching rows skipped before this page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseListQuery reads page, limit, sort, keyword and tag from query values.
func ParseListQuery(v url.Values) (ListQuery, error) {
	page, err := parsePositive("page", v.Get("page"), defaultPage)
	if err != nil {
		return ListQuery{}, err
	}
	limit, err := parsePositive("limit", v.Get("limit"), defaultLimit)
	if err != nil {
		return ListQuery{}, err
	}
	if page-1 > math.MaxInt/limit {
		return ListQuery{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidPagination, page)
	}

	sort, err := ParseSort(v.Get("sort"))
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Keyword: v.Get("keyword"),
		Tag:     v.Get("tag"),
		Page:    page,
		Limit:   limit,
		Sort:    sort,
	}, nil
}

// ParseSort parses "field" or "field,direction" (e.g. "title,ASC").
// The field must be one of the exposed post fields; the direction is ASC or
// DESC in any case and defaults to ASC. An empty value yields DefaultSort.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return Sort{}, fmt.Errorf("%w: expected field,direction", ErrInvalidSort)
	}

	field := strings.TrimSpace(parts[0])
	column, ok := sortColumns[field]
	if !ok {
		return Sort{}, fmt.Errorf("%w: unknown field %q", ErrInvalidSort, field)
	}

	s := Sort{Column: column}
	if len(parts) == 2 {
		switch dir := strings.TrimSpace(parts[1]); strings.ToUpper(dir) {
		case "", "ASC":
		case "DESC":
			s.Desc = true
		default:
			return Sort{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, dir)
		}
	}
	return s, nil
}

// isSortColumn reports whether column is one a listing may be ordered by.
func isSortColumn(column string) bool {
	for _, c := range sortColumns {
		if c == column {
			return true
		}
	}
	return false
}

func parsePositive(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidPagination, name)
	}
	return n, nil
}

// listStatement is the SQL for one listing: a count over the filter and the
// page of rows.
type listStatement struct {
	countSQL  string
	countArgs []any
	rowsSQL   string
	rowsArgs  []any
}

func buildListStatement(q ListQuery) listStatement {
	var (
		conds []string
		args  []any
	)

	if q.Keyword != "" {
		args = append(args, "%"+escapeLike(q.Keyword)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, n, n))
	}
	if q.Tag != "" {
		args = append(args, q.Tag)
		conds = append(conds, fmt.Sprintf("tag = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	if q.Sort.Column == "" {
		q.Sort = DefaultSort
	}
	column := q.Sort.Column
	dir := "ASC"
	if q.Sort.Desc {
		dir = "DESC"
	}
	order := column + " " + dir
	if column != "id" {
		order += ", id " + dir
	}

	rowsArgs := make([]any, 0, len(args)+2)
	rowsArgs = append(rowsArgs, args...)
	rowsArgs = append(rowsArgs, q.Limit, q.Offset())

	return listStatement{
		countSQL:  "SELECT COUNT(*) FROM posts" + where,
		countArgs: args,
		rowsSQL: fmt.Sprintf("SELECT %s FROM posts%s ORDER BY %s LIMIT $%d OFFSET $%d",
			postColumns, where, order, len(args)+1, len(args)+2),
		rowsArgs: rowsArgs,
	}
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as the escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
