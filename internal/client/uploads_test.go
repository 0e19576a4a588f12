package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

func TestUploadsClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/uploads", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("raw bytes"), body)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys": map[string]interface{}{"id": "upload-id", "type": "Upload"},
		})
	}))
	defer server.Close()

	// The upload host is separate from the management host.
	client, err := New(&cma.Config{
		AccessToken: "token",
		Host:        "http://unused.invalid",
		UploadHost:  server.URL,
		SpaceID:     "space-id",
	})
	require.NoError(t, err)

	upload, err := client.Uploads().Create(context.Background(), []byte("raw bytes"))
	require.NoError(t, err)
	assert.Equal(t, "upload-id", upload.Sys.ID)
}

func TestUploadsClient_GetAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/uploads/upload-id", r.URL.Path)

		switch r.Method {
		case "GET":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"sys": map[string]interface{}{"id": "upload-id", "type": "Upload"},
			})
		case "DELETE":
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client, err := New(&cma.Config{
		AccessToken: "token",
		Host:        "http://unused.invalid",
		UploadHost:  server.URL,
		SpaceID:     "space-id",
	})
	require.NoError(t, err)

	upload, err := client.Uploads().Get(context.Background(), "upload-id")
	require.NoError(t, err)
	assert.Equal(t, "upload-id", upload.Sys.ID)

	err = client.Uploads().Delete(context.Background(), "upload-id")
	require.NoError(t, err)
}
