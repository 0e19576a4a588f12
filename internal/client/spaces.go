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

// SpacesClient implements cma.SpacesClient.
type SpacesClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
}

// NewSpacesClient creates a new spaces client.
func NewSpacesClient(httpClient *http.Client, endpoints cma.EndpointTable) *SpacesClient {
	return &SpacesClient{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}

func (c *SpacesClient) path(spaceID string) (string, error) {
	return c.endpoints.Expand(cma.KindSpace, nil, spaceID)
}

// Create implements cma.SpacesClient.Create.
func (c *SpacesClient) Create(ctx context.Context, request *cma.SpaceCreateRequest) (*cma.Space, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating space: %w", err)
	}

	var space cma.Space
	if err := decode(resp.Body, &space, "space"); err != nil {
		return nil, err
	}

	return &space, nil
}

// Get implements cma.SpacesClient.Get.
func (c *SpacesClient) Get(ctx context.Context, spaceID string) (*cma.Space, error) {
	path, err := c.path(spaceID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting space %q: %w", spaceID, err)
	}

	var space cma.Space
	if err := decode(resp.Body, &space, "space"); err != nil {
		return nil, err
	}

	return &space, nil
}

// List implements cma.SpacesClient.List.
func (c *SpacesClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Space], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists spaces at an explicit path.
func (c *SpacesClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Space], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}

	var result cma.Collection[cma.Space]
	if err := decode(resp.Body, &result, "spaces list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.SpacesClient.Update. Only the name can change.
func (c *SpacesClient) Update(ctx context.Context, space *cma.Space) (*cma.Space, error) {
	sys := space.GetSys()
	if sys == nil || sys.ID == "" {
		return nil, ErrMissingVersion
	}

	version, err := writeVersion(sys)
	if err != nil {
		return nil, err
	}

	path, err := c.path(sys.ID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    &cma.SpaceCreateRequest{Name: space.Name},
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating space %q: %w", sys.ID, err)
	}

	var updated cma.Space
	if err := decode(resp.Body, &updated, "space"); err != nil {
		return nil, err
	}

	*space = updated

	return space, nil
}

// Delete implements cma.SpacesClient.Delete. Deleting a space destroys all
// of its content.
func (c *SpacesClient) Delete(ctx context.Context, spaceID string) error {
	path, err := c.path(spaceID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting space %q: %w", spaceID, err)
	}

	return nil
}
