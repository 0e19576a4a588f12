package client

import (
	"context"
	"fmt"

	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// UsersClient implements cma.UsersClient.
type UsersClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, endpoints cma.EndpointTable) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}

// Me implements cma.UsersClient.Me, returning the user the access token
// belongs to.
func (c *UsersClient) Me(ctx context.Context) (*cma.User, error) {
	path, err := c.endpoints.Expand(cma.KindUser, nil, "me")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user cma.User
	if err := decode(resp.Body, &user, "user"); err != nil {
		return nil, err
	}

	return &user, nil
}
