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

func TestUsersClient_Me(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":       map[string]interface{}{"id": "user-id", "type": "User"},
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@example.com",
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	user, err := client.Users().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-id", user.Sys.ID)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestOrganizationsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sys":   map[string]interface{}{"type": "Array"},
			"total": 1,
			"skip":  0,
			"limit": 100,
			"items": []interface{}{
				map[string]interface{}{
					"sys":  map[string]interface{}{"id": "org-id", "type": "Organization"},
					"name": "Acme",
				},
			},
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	collection, err := client.Organizations().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, collection.Items, 1)
	assert.Equal(t, "Acme", collection.Items[0].Name)
}
