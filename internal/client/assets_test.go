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

func assetJSON(id string, version int) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "Asset",
			"version": version,
		},
		"fields": map[string]interface{}{
			"title": map[string]interface{}{"en-US": "Cat photo"},
			"file": map[string]interface{}{
				"en-US": map[string]interface{}{
					"fileName":    "cat.jpg",
					"contentType": "image/jpeg",
				},
			},
		},
	}
}

func TestAssetsClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/assets", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(assetJSON("asset-id", 1))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	asset, err := client.Assets().Create(context.Background(), &cma.AssetCreateRequest{
		Fields: &cma.AssetFields{
			Title: map[string]string{"en-US": "Cat photo"},
			File: map[string]*cma.File{
				"en-US": {FileName: "cat.jpg", ContentType: "image/jpeg", UploadURL: "https://example.com/cat.jpg"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "asset-id", asset.Sys.ID)
	assert.Equal(t, "Cat photo", asset.Fields.Title["en-US"])
}

func TestAssetsClient_Process(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/assets/asset-id/files/en-US/process", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "1", r.Header.Get("X-Contentful-Version"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	asset := &cma.Asset{Sys: &cma.Sys{ID: "asset-id", Type: "Asset", Version: 1}}

	err := client.Assets().Process(context.Background(), asset, "en-US")
	require.NoError(t, err)
}

func TestAssetsClient_UpdateSendsVersionAndRefreshes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "2", r.Header.Get("X-Contentful-Version"))

		json.NewEncoder(w).Encode(assetJSON("asset-id", 3))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	asset := &cma.Asset{
		Sys: &cma.Sys{ID: "asset-id", Type: "Asset", Version: 2},
		Fields: &cma.AssetFields{
			Title: map[string]string{"en-US": "Cat photo"},
		},
	}

	updated, err := client.Assets().Update(context.Background(), asset)
	require.NoError(t, err)
	assert.Same(t, asset, updated)
	assert.Equal(t, 3, asset.Sys.Version)
}

func TestAssetsClient_Publish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/environments/master/assets/asset-id/published", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		json.NewEncoder(w).Encode(assetJSON("asset-id", 2))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	asset := &cma.Asset{Sys: &cma.Sys{ID: "asset-id", Type: "Asset", Version: 1}}

	_, err := client.Assets().Publish(context.Background(), asset)
	require.NoError(t, err)
	assert.Equal(t, 2, asset.Sys.Version)
}
