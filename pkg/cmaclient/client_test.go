package cmaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentful-labs/cma-client/pkg/cma"
	"github.com/contentful-labs/cma-client/pkg/cmaclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := cmaclient.New(&cma.Config{AccessToken: "CFPAT-token"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := cmaclient.New(nil)
		assert.ErrorIs(t, err, cma.ErrConfigRequired)
	})

	t.Run("requires access token", func(t *testing.T) {
		t.Parallel()

		_, err := cmaclient.New(&cma.Config{})
		assert.ErrorIs(t, err, cma.ErrAccessTokenRequired)
	})

	t.Run("normalizes host", func(t *testing.T) {
		t.Parallel()

		config := &cma.Config{
			AccessToken: "CFPAT-token",
			Host:        "api.eu.contentful.com/",
		}

		_, err := cmaclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.eu.contentful.com", config.Host)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := cmaclient.NewWithToken("CFPAT-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewScoped(t *testing.T) {
	t.Parallel()

	client, err := cmaclient.NewScoped("CFPAT-token", "space-id", "staging")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.URL.Path == "/spaces/space-id/environments/master/entries" && request.Method == "GET":
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"sys":   map[string]interface{}{"type": "Array"},
				"total": 1,
				"skip":  0,
				"limit": 100,
				"items": []interface{}{
					map[string]interface{}{
						"sys":    map[string]interface{}{"id": "entry-id", "type": "Entry", "version": 1},
						"fields": map[string]interface{}{"title": map[string]interface{}{"en-US": "Hello"}},
					},
				},
			})
		case strings.HasPrefix(request.URL.Path, "/spaces/space-id/environments/master/entries/"):
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"sys":    map[string]interface{}{"id": "entry-id", "type": "Entry", "version": 1},
				"fields": map[string]interface{}{"title": map[string]interface{}{"en-US": "Hello"}},
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := cmaclient.New(&cma.Config{
		AccessToken: "CFPAT-token",
		Host:        server.URL,
		SpaceID:     "space-id",
	})
	require.NoError(t, err)

	entries, err := client.Entries().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries.Items, 1)

	title, ok := entries.Items[0].GetField("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "Hello", title)

	// Links resolve through the same client.
	resource, err := client.Resolver().Resolve(context.Background(), cma.NewLink(cma.KindEntry, "entry-id"), map[string]string{
		"space":       "space-id",
		"environment": "master",
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-id", resource.GetSys().ID)
}
