package cma

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams expresses the filter, sort, and pagination options of a list
// call. Once built it is only read; ToValues serializes it to query-string
// pairs.
type QueryParams struct {
	Skip        int
	Limit       int
	Order       string
	ContentType string
	Query       string
	Select      []string
	Locale      string

	// Filters maps a full filter key such as "fields.title[match]" or
	// "sys.id[in]" to its values; multiple values are comma-joined.
	Filters map[string][]string
}

// NewQueryParams creates an empty query.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithSkip sets the pagination offset.
func (q *QueryParams) WithSkip(skip int) *QueryParams {
	q.Skip = skip

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithOrder sets the sort order, e.g. "-sys.updatedAt".
func (q *QueryParams) WithOrder(order string) *QueryParams {
	q.Order = order

	return q
}

// WithContentType restricts an entry query to one content type.
func (q *QueryParams) WithContentType(contentTypeID string) *QueryParams {
	q.ContentType = contentTypeID

	return q
}

// WithQuery sets a full-text search term.
func (q *QueryParams) WithQuery(text string) *QueryParams {
	q.Query = text

	return q
}

// WithSelect appends field paths to project in the response.
func (q *QueryParams) WithSelect(paths ...string) *QueryParams {
	q.Select = append(q.Select, paths...)

	return q
}

// WithLocale scopes localized fields to one locale.
func (q *QueryParams) WithLocale(locale string) *QueryParams {
	q.Locale = locale

	return q
}

// WithFilter appends values for a filter key such as "sys.id[in]".
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// ToValues serializes the query to URL values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Order != "" {
		values.Set("order", q.Order)
	}

	if q.ContentType != "" {
		values.Set("content_type", q.ContentType)
	}

	if q.Query != "" {
		values.Set("query", q.Query)
	}

	if q.Locale != "" {
		values.Set("locale", q.Locale)
	}

	if len(q.Select) > 0 {
		values.Set("select", strings.Join(q.Select, ","))
	}

	for key, vals := range q.Filters {
		if len(vals) > 0 {
			values.Set(key, strings.Join(vals, ","))
		}
	}

	return values
}
