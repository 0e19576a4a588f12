package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

func contentTypeJSON(id string, version int, name string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "ContentType",
			"version": version,
		},
		"name":         name,
		"displayField": "title",
		"fields": []interface{}{
			map[string]interface{}{"id": "title", "name": "Title", "type": "Symbol", "required": true},
		},
	}
}

func TestContentTypesClient_CreateWithID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/content_types/blogPost", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var req cma.ContentTypeCreateRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "Blog Post", req.Name)
		require.Len(t, req.Fields, 1)
		assert.Equal(t, "title", req.Fields[0].ID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(contentTypeJSON("blogPost", 1, req.Name))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	contentType, err := client.ContentTypes().CreateWithID(context.Background(), "blogPost", &cma.ContentTypeCreateRequest{
		Name:         "Blog Post",
		DisplayField: "title",
		Fields: []*cma.ContentTypeField{
			{ID: "title", Name: "Title", Type: "Symbol", Required: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "blogPost", contentType.Sys.ID)
	assert.Equal(t, "Blog Post", contentType.Name)
}

func TestContentTypesClient_PublishUnpublish(t *testing.T) {
	var requests []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		assert.Equal(t, "1", r.Header.Get("X-Contentful-Version"))

		json.NewEncoder(w).Encode(contentTypeJSON("blogPost", 2, "Blog Post"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	contentType := &cma.ContentType{Sys: &cma.Sys{ID: "blogPost", Type: "ContentType", Version: 1}}

	_, err := client.ContentTypes().Publish(context.Background(), contentType)
	require.NoError(t, err)

	contentType.Sys.Version = 1

	_, err = client.ContentTypes().Unpublish(context.Background(), contentType)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /spaces/space-id/environments/master/content_types/blogPost/published",
		"DELETE /spaces/space-id/environments/master/content_types/blogPost/published",
	}, requests)
}

func TestContentTypesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/content_types/blogPost", r.URL.Path)

		json.NewEncoder(w).Encode(contentTypeJSON("blogPost", 4, "Blog Post"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	contentType, err := client.ContentTypes().Get(context.Background(), "blogPost")
	require.NoError(t, err)
	assert.Equal(t, 4, contentType.Sys.Version)
	require.Len(t, contentType.Fields, 1)
	assert.Equal(t, "Symbol", contentType.Fields[0].Type)
}
