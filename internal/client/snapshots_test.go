package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotsClient_ListForEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries/entry-id/snapshots", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":   map[string]interface{}{"type": "Array"},
			"total": 1,
			"skip":  0,
			"limit": 100,
			"items": []interface{}{
				map[string]interface{}{
					"sys":      map[string]interface{}{"id": "snap-1", "type": "Snapshot"},
					"snapshot": map[string]interface{}{"fields": map[string]interface{}{}},
				},
			},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	collection, err := client.Snapshots().ListForEntry(context.Background(), "entry-id", nil)
	require.NoError(t, err)
	require.Len(t, collection.Items, 1)
	assert.Equal(t, "snap-1", collection.Items[0].Sys.ID)
	assert.NotEmpty(t, collection.Items[0].Snapshot)
}

func TestSnapshotsClient_GetForEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries/entry-id/snapshots/snap-1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":      map[string]interface{}{"id": "snap-1", "type": "Snapshot"},
			"snapshot": map[string]interface{}{"fields": map[string]interface{}{"title": map[string]interface{}{"en-US": "Old title"}}},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	snapshot, err := client.Snapshots().GetForEntry(context.Background(), "entry-id", "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", snapshot.Sys.ID)
	assert.Contains(t, string(snapshot.Snapshot), "Old title")
}

func TestSnapshotsClient_ListForContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/content_types/blogPost/snapshots", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":   map[string]interface{}{"type": "Array"},
			"total": 1,
			"skip":  0,
			"limit": 100,
			"items": []interface{}{
				map[string]interface{}{
					"sys":      map[string]interface{}{"id": "snap-ct-1", "type": "Snapshot"},
					"snapshot": map[string]interface{}{"name": "Blog Post"},
				},
			},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	collection, err := client.Snapshots().ListForContentType(context.Background(), "blogPost", nil)
	require.NoError(t, err)
	require.Len(t, collection.Items, 1)
	assert.Equal(t, "snap-ct-1", collection.Items[0].Sys.ID)
}

func TestSnapshotsClient_GetForContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/content_types/blogPost/snapshots/snap-ct-1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":      map[string]interface{}{"id": "snap-ct-1", "type": "Snapshot"},
			"snapshot": map[string]interface{}{"name": "Blog Post", "fields": []interface{}{}},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	snapshot, err := client.Snapshots().GetForContentType(context.Background(), "blogPost", "snap-ct-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-ct-1", snapshot.Sys.ID)
	assert.Contains(t, string(snapshot.Snapshot), "Blog Post")
}
