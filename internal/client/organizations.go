package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// OrganizationsClient implements cma.OrganizationsClient. Organizations are
// read-only on this API.
type OrganizationsClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(httpClient *http.Client, endpoints cma.EndpointTable) *OrganizationsClient {
	return &OrganizationsClient{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}

// List implements cma.OrganizationsClient.List.
func (c *OrganizationsClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Organization], error) {
	path, err := c.endpoints.Expand(cma.KindOrganization, nil, "")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists organizations at an explicit path.
func (c *OrganizationsClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Organization], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	var result cma.Collection[cma.Organization]
	if err := decode(resp.Body, &result, "organizations list"); err != nil {
		return nil, err
	}

	return &result, nil
}
