package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"iwannabeavolunteer/portal/internal/constants"
)

// Filter is an equality filter, rendered as column=eq.value
type Filter struct {
	Column string
	Value  string
}

// Eq builds an equality filter
func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts a select by one column
type Order struct {
	Column    string
	Ascending bool
}

// Query describes a table read
type Query struct {
	Columns string
	Filters []Filter
	Order   *Order
	Limit   int
}

func (q Query) values() url.Values {
	v := url.Values{}
	cols := q.Columns
	if cols == "" {
		cols = "*"
	}
	v.Set("select", cols)
	for _, f := range q.Filters {
		v.Add(f.Column, "eq."+f.Value)
	}
	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		v.Set("order", q.Order.Column+"."+dir)
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	return v
}

func tablePath(table string, v url.Values) string {
	return "/rest/v1/" + url.PathEscape(table) + "?" + v.Encode()
}

// Select reads rows of table into dest, which must point to a slice
func (c *Client) Select(ctx context.Context, table string, q Query, dest any) error {
	return c.do(ctx, request{
		operation: "rest.select." + table,
		method:    http.MethodGet,
		path:      tablePath(table, q.values()),
	}, dest)
}

// SelectSingle reads exactly one row into dest. Zero or several matching rows are errors.
func SelectSingle[T any](ctx context.Context, c *Client, table string, q Query) (*T, error) {
	q.Limit = 2
	var rows []T
	if err := c.Select(ctx, table, q, &rows); err != nil {
		return nil, err
	}
	switch len(rows) {
	case 1:
		return &rows[0], nil
	case 0:
		return nil, &ProviderError{
			Status:  http.StatusNotAcceptable,
			Code:    constants.ErrCodeNoRows,
			Message: "JSON object requested, multiple (or no) rows returned",
			Details: "The result contains 0 rows",
		}
	default:
		return nil, &ProviderError{
			Status:  http.StatusNotAcceptable,
			Code:    constants.ErrCodeMultipleRows,
			Message: "JSON object requested, multiple (or no) rows returned",
			Details: "The result contains more than one row",
		}
	}
}

// Insert writes rows (a struct or a slice of structs) into table
func (c *Client) Insert(ctx context.Context, table string, rows any) error {
	return c.do(ctx, request{
		operation: "rest.insert." + table,
		method:    http.MethodPost,
		path:      "/rest/v1/" + url.PathEscape(table),
		body:      rows,
		headers:   map[string]string{"Prefer": "return=minimal"},
	}, nil)
}

// Delete removes the rows of table matching filters and reports how many were removed.
// At least one filter is required.
func (c *Client) Delete(ctx context.Context, table string, filters ...Filter) (int, error) {
	if len(filters) == 0 {
		return 0, &ProviderError{
			Code:    constants.ErrCodeBadRequest,
			Message: "DELETE requires a filter",
		}
	}

	v := url.Values{}
	for _, f := range filters {
		v.Add(f.Column, "eq."+f.Value)
	}
	v.Set("select", "id")

	var deleted []map[string]any
	err := c.do(ctx, request{
		operation: "rest.delete." + table,
		method:    http.MethodDelete,
		path:      "/rest/v1/" + url.PathEscape(table) + "?" + v.Encode(),
		headers:   map[string]string{"Prefer": "return=representation"},
	}, &deleted)
	if err != nil {
		return 0, err
	}
	return len(deleted), nil
}
