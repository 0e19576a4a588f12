package cma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_ToValues(t *testing.T) {
	params := NewQueryParams().
		WithSkip(20).
		WithLimit(10).
		WithOrder("-sys.updatedAt").
		WithContentType("blogPost").
		WithQuery("cats").
		WithLocale("en-US").
		WithSelect("sys.id", "fields.title")

	values := params.ToValues()
	assert.Equal(t, "20", values.Get("skip"))
	assert.Equal(t, "10", values.Get("limit"))
	assert.Equal(t, "-sys.updatedAt", values.Get("order"))
	assert.Equal(t, "blogPost", values.Get("content_type"))
	assert.Equal(t, "cats", values.Get("query"))
	assert.Equal(t, "en-US", values.Get("locale"))
	assert.Equal(t, "sys.id,fields.title", values.Get("select"))
}

func TestQueryParams_EmptyProducesNoValues(t *testing.T) {
	values := NewQueryParams().ToValues()
	assert.Empty(t, values)
}

func TestQueryParams_FiltersAreCommaJoined(t *testing.T) {
	params := NewQueryParams().
		WithFilter("sys.id[in]", "a", "b").
		WithFilter("sys.id[in]", "c").
		WithFilter("fields.title[match]", "hello")

	values := params.ToValues()
	assert.Equal(t, "a,b,c", values.Get("sys.id[in]"))
	assert.Equal(t, "hello", values.Get("fields.title[match]"))
}

func TestQueryParams_ZeroSkipOmitted(t *testing.T) {
	values := NewQueryParams().WithSkip(0).WithLimit(50).ToValues()
	assert.False(t, values.Has("skip"))
	assert.Equal(t, "50", values.Get("limit"))
}
