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

func TestTagsClient_CreateWithID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/tags/campaign", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Campaign", body["name"])
		assert.Equal(t, "public", body["sys"].(map[string]interface{})["visibility"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys": map[string]interface{}{
				"id":         "campaign",
				"type":       "Tag",
				"version":    1,
				"visibility": "public",
			},
			"name": "Campaign",
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	tag, err := client.Tags().CreateWithID(context.Background(), "campaign", &cma.TagCreateRequest{
		Name:       "Campaign",
		Visibility: cma.TagVisibilityPublic,
	})
	require.NoError(t, err)
	assert.Equal(t, "campaign", tag.Sys.ID)
	assert.Equal(t, "public", tag.Sys.Visibility)
}

func TestTagsClient_CreateRejectsUnknownVisibility(t *testing.T) {
	client := testClient(t, "http://unused.invalid")

	_, err := client.Tags().CreateWithID(context.Background(), "campaign", &cma.TagCreateRequest{
		Name:       "Campaign",
		Visibility: "internal",
	})

	var validationErr *cma.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "visibility", validationErr.Field)
}

func TestTagsClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/spaces/space-id/environments/master/tags/campaign", r.URL.Path)
		assert.Equal(t, "1", r.Header.Get("X-Contentful-Version"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	err := client.Tags().Delete(context.Background(), "campaign", 1)
	require.NoError(t, err)
}
