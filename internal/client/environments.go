package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/contentful-labs/cma-client/internal/constants"
	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// EnvironmentsClient implements cma.EnvironmentsClient.
type EnvironmentsClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
	spaceID    string
}

// NewEnvironmentsClient creates a new environments client.
func NewEnvironmentsClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID string) *EnvironmentsClient {
	return &EnvironmentsClient{
		httpClient: httpClient,
		endpoints:  endpoints,
		spaceID:    spaceID,
	}
}

func (c *EnvironmentsClient) path(environmentID string) (string, error) {
	return c.endpoints.Expand(cma.KindEnvironment, map[string]string{
		"space": c.spaceID,
	}, environmentID)
}

// Create implements cma.EnvironmentsClient.Create. Environments are always
// created with an explicit id.
func (c *EnvironmentsClient) Create(ctx context.Context, environmentID string, request *cma.EnvironmentCreateRequest) (*cma.Environment, error) {
	return c.create(ctx, environmentID, "", request)
}

// CreateFromSource implements cma.EnvironmentsClient.CreateFromSource,
// cloning the source environment's content into the new one.
func (c *EnvironmentsClient) CreateFromSource(ctx context.Context, environmentID, sourceEnvironmentID string, request *cma.EnvironmentCreateRequest) (*cma.Environment, error) {
	return c.create(ctx, environmentID, sourceEnvironmentID, request)
}

func (c *EnvironmentsClient) create(ctx context.Context, environmentID, sourceEnvironmentID string, request *cma.EnvironmentCreateRequest) (*cma.Environment, error) {
	path, err := c.path(environmentID)
	if err != nil {
		return nil, err
	}

	var headers map[string]string
	if sourceEnvironmentID != "" {
		headers = map[string]string{constants.HeaderSourceEnvironment: sourceEnvironmentID}
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: headers,
	})
	if err != nil {
		return nil, fmt.Errorf("creating environment %q: %w", environmentID, err)
	}

	var environment cma.Environment
	if err := decode(resp.Body, &environment, "environment"); err != nil {
		return nil, err
	}

	return &environment, nil
}

// Get implements cma.EnvironmentsClient.Get.
func (c *EnvironmentsClient) Get(ctx context.Context, environmentID string) (*cma.Environment, error) {
	path, err := c.path(environmentID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting environment %q: %w", environmentID, err)
	}

	var environment cma.Environment
	if err := decode(resp.Body, &environment, "environment"); err != nil {
		return nil, err
	}

	return &environment, nil
}

// List implements cma.EnvironmentsClient.List.
func (c *EnvironmentsClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Environment], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists environments at an explicit path.
func (c *EnvironmentsClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Environment], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing environments: %w", err)
	}

	var result cma.Collection[cma.Environment]
	if err := decode(resp.Body, &result, "environments list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete implements cma.EnvironmentsClient.Delete.
func (c *EnvironmentsClient) Delete(ctx context.Context, environmentID string) error {
	path, err := c.path(environmentID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting environment %q: %w", environmentID, err)
	}

	return nil
}
