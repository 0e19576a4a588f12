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

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := New(&cma.Config{
		AccessToken: "token",
		Host:        serverURL,
		SpaceID:     "space-id",
		Environment: "master",
	})
	require.NoError(t, err)

	return client
}

func entryJSON(id string, version int, fields cma.Fields) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "Entry",
			"version": version,
		},
		"fields": fields,
	}
}

func TestEntriesClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "blogPost", r.Header.Get("X-Contentful-Content-Type"))

		var req cma.EntryCreateRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "Hello", req.Fields["title"]["en-US"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entryJSON("entry-id", 1, req.Fields))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	entry, err := client.Entries().Create(context.Background(), "blogPost", &cma.EntryCreateRequest{
		Fields: cma.Fields{"title": {"en-US": "Hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-id", entry.Sys.ID)
	assert.Equal(t, 1, entry.Sys.Version)

	title, ok := entry.GetField("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "Hello", title)
}

func TestEntriesClient_CreateWithID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries/my-entry", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "blogPost", r.Header.Get("X-Contentful-Content-Type"))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entryJSON("my-entry", 1, nil))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	entry, err := client.Entries().CreateWithID(context.Background(), "my-entry", "blogPost", &cma.EntryCreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "my-entry", entry.Sys.ID)
}

func TestEntriesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries", r.URL.Path)
		assert.Equal(t, "blogPost", r.URL.Query().Get("content_type"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":   map[string]interface{}{"type": "Array"},
			"total": 2,
			"skip":  0,
			"limit": 10,
			"items": []interface{}{
				entryJSON("entry-1", 1, nil),
				entryJSON("entry-2", 3, nil),
			},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	params := cma.NewQueryParams().WithContentType("blogPost").WithLimit(10)

	collection, err := client.Entries().List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 2, collection.Total)
	require.Len(t, collection.Items, 2)
	assert.Equal(t, "entry-1", collection.Items[0].Sys.ID)
	assert.Equal(t, "entry-2", collection.Items[1].Sys.ID)
}

func TestEntriesClient_UpdateSendsVersionAndRefreshes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries/entry-id", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "3", r.Header.Get("X-Contentful-Version"))

		body, _ := json.Marshal(entryJSON("entry-id", 4, cma.Fields{"title": {"en-US": "Updated"}}))
		w.Write(body)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	entry := &cma.Entry{
		Sys:    &cma.Sys{ID: "entry-id", Type: "Entry", Version: 3},
		Fields: cma.Fields{"title": {"en-US": "Updated"}},
	}

	updated, err := client.Entries().Update(context.Background(), entry)
	require.NoError(t, err)
	assert.Same(t, entry, updated)
	assert.Equal(t, 4, entry.Sys.Version)
}

func TestEntriesClient_UpdateRequiresVersion(t *testing.T) {
	client := testClient(t, "http://unused.invalid")

	entry := &cma.Entry{Sys: &cma.Sys{ID: "entry-id", Type: "Entry"}}

	_, err := client.Entries().Update(context.Background(), entry)
	assert.ErrorIs(t, err, ErrMissingVersion)
}

func TestEntriesClient_PublishLifecycle(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		assert.Equal(t, "2", r.Header.Get("X-Contentful-Version"))

		json.NewEncoder(w).Encode(entryJSON("entry-id", 3, nil))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	entry := &cma.Entry{Sys: &cma.Sys{ID: "entry-id", Type: "Entry", Version: 2}}

	_, err := client.Entries().Publish(context.Background(), entry)
	require.NoError(t, err)

	entry.Sys.Version = 2

	_, err = client.Entries().Unpublish(context.Background(), entry)
	require.NoError(t, err)

	entry.Sys.Version = 2

	_, err = client.Entries().Archive(context.Background(), entry)
	require.NoError(t, err)

	entry.Sys.Version = 2

	_, err = client.Entries().Unarchive(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /spaces/space-id/environments/master/entries/entry-id/published",
		"DELETE /spaces/space-id/environments/master/entries/entry-id/published",
		"PUT /spaces/space-id/environments/master/entries/entry-id/archived",
		"DELETE /spaces/space-id/environments/master/entries/entry-id/archived",
	}, paths)
}

func TestEntriesClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/spaces/space-id/environments/master/entries/entry-id", r.URL.Path)
		assert.Equal(t, "5", r.Header.Get("X-Contentful-Version"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	err := client.Entries().Delete(context.Background(), "entry-id", 5)
	require.NoError(t, err)
}

func TestEntriesClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":       map[string]interface{}{"type": "Error", "id": "NotFound"},
			"message":   "The resource could not be found.",
			"requestId": "req-1",
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Entries().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, cma.IsNotFound(err))
}
