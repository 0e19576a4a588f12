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

func TestNew_ValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, cma.ErrConfigRequired)

	_, err = New(&cma.Config{})
	assert.ErrorIs(t, err, cma.ErrAccessTokenRequired)
}

func TestNew_InitializesResourceClients(t *testing.T) {
	client, err := New(&cma.Config{AccessToken: "token", SpaceID: "space-id"})
	require.NoError(t, err)

	assert.NotNil(t, client.Spaces())
	assert.NotNil(t, client.Environments())
	assert.NotNil(t, client.Entries())
	assert.NotNil(t, client.Assets())
	assert.NotNil(t, client.ContentTypes())
	assert.NotNil(t, client.EditorInterfaces())
	assert.NotNil(t, client.Snapshots())
	assert.NotNil(t, client.Locales())
	assert.NotNil(t, client.Tags())
	assert.NotNil(t, client.APIKeys())
	assert.NotNil(t, client.Webhooks())
	assert.NotNil(t, client.Roles())
	assert.NotNil(t, client.Uploads())
	assert.NotNil(t, client.Organizations())
	assert.NotNil(t, client.Users())
	assert.NotNil(t, client.Resolver())
}

func TestClient_RequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cma-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.contentful.management.v1+json", r.Header.Get("Accept"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":  map[string]interface{}{"id": "space-id", "type": "Space"},
			"name": "Example",
		})
	}))
	defer server.Close()

	client, err := New(&cma.Config{AccessToken: "cma-token", Host: server.URL})
	require.NoError(t, err)

	space, err := client.Spaces().Get(context.Background(), "space-id")
	require.NoError(t, err)
	assert.Equal(t, "Example", space.Name)
}

func TestClient_ExtraHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "platform", r.Header.Get("X-Team"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":  map[string]interface{}{"id": "space-id", "type": "Space"},
			"name": "Example",
		})
	}))
	defer server.Close()

	client, err := New(&cma.Config{
		AccessToken:  "cma-token",
		Host:         server.URL,
		ExtraHeaders: map[string]string{"X-Team": "platform"},
	})
	require.NoError(t, err)

	_, err = client.Spaces().Get(context.Background(), "space-id")
	require.NoError(t, err)
}

func TestClient_Raw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/entries/entry-id", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":    map[string]interface{}{"id": "entry-id", "type": "Entry"},
			"fields": map[string]interface{}{},
		})
	}))
	defer server.Close()

	client, err := New(&cma.Config{AccessToken: "token", Host: server.URL})
	require.NoError(t, err)

	resource, err := client.Raw(context.Background(), "GET", "/spaces/space-id/environments/master/entries/entry-id", nil)
	require.NoError(t, err)

	entry, ok := resource.(*cma.Entry)
	require.True(t, ok)
	assert.Equal(t, "entry-id", entry.Sys.ID)
}

func TestClient_RawEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := New(&cma.Config{AccessToken: "token", Host: server.URL})
	require.NoError(t, err)

	resource, err := client.Raw(context.Background(), "DELETE", "/spaces/space-id", nil)
	require.NoError(t, err)
	assert.Nil(t, resource)
}
