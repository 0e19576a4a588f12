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

// APIKeysClient implements cma.APIKeysClient. Preview keys are created by
// the platform alongside delivery keys and are read-only here.
type APIKeysClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
	spaceID    string
}

// NewAPIKeysClient creates a new API keys client.
func NewAPIKeysClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID string) *APIKeysClient {
	return &APIKeysClient{
		httpClient: httpClient,
		endpoints:  endpoints,
		spaceID:    spaceID,
	}
}

func (c *APIKeysClient) path(keyID string) (string, error) {
	return c.endpoints.Expand(cma.KindAPIKey, map[string]string{
		"space": c.spaceID,
	}, keyID)
}

func (c *APIKeysClient) previewPath(previewKeyID string) (string, error) {
	return c.endpoints.Expand(cma.KindPreviewAPIKey, map[string]string{
		"space": c.spaceID,
	}, previewKeyID)
}

// Create implements cma.APIKeysClient.Create.
func (c *APIKeysClient) Create(ctx context.Context, request *cma.APIKeyCreateRequest) (*cma.APIKey, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating api key: %w", err)
	}

	var key cma.APIKey
	if err := decode(resp.Body, &key, "api key"); err != nil {
		return nil, err
	}

	return &key, nil
}

// Get implements cma.APIKeysClient.Get.
func (c *APIKeysClient) Get(ctx context.Context, keyID string) (*cma.APIKey, error) {
	path, err := c.path(keyID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting api key %q: %w", keyID, err)
	}

	var key cma.APIKey
	if err := decode(resp.Body, &key, "api key"); err != nil {
		return nil, err
	}

	return &key, nil
}

// List implements cma.APIKeysClient.List.
func (c *APIKeysClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.APIKey], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists API keys at an explicit path.
func (c *APIKeysClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.APIKey], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing api keys: %w", err)
	}

	var result cma.Collection[cma.APIKey]
	if err := decode(resp.Body, &result, "api keys list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.APIKeysClient.Update.
func (c *APIKeysClient) Update(ctx context.Context, key *cma.APIKey) (*cma.APIKey, error) {
	sys := key.GetSys()
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

	request := &cma.APIKeyCreateRequest{
		Name:         key.Name,
		Description:  key.Description,
		Environments: key.Environments,
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating api key %q: %w", sys.ID, err)
	}

	var updated cma.APIKey
	if err := decode(resp.Body, &updated, "api key"); err != nil {
		return nil, err
	}

	*key = updated

	return key, nil
}

// Delete implements cma.APIKeysClient.Delete.
func (c *APIKeysClient) Delete(ctx context.Context, keyID string) error {
	path, err := c.path(keyID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting api key %q: %w", keyID, err)
	}

	return nil
}

// GetPreviewKey implements cma.APIKeysClient.GetPreviewKey.
func (c *APIKeysClient) GetPreviewKey(ctx context.Context, previewKeyID string) (*cma.PreviewAPIKey, error) {
	path, err := c.previewPath(previewKeyID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting preview api key %q: %w", previewKeyID, err)
	}

	var key cma.PreviewAPIKey
	if err := decode(resp.Body, &key, "preview api key"); err != nil {
		return nil, err
	}

	return &key, nil
}

// ListPreviewKeys implements cma.APIKeysClient.ListPreviewKeys.
func (c *APIKeysClient) ListPreviewKeys(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.PreviewAPIKey], error) {
	path, err := c.previewPath("")
	if err != nil {
		return nil, err
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing preview api keys: %w", err)
	}

	var result cma.Collection[cma.PreviewAPIKey]
	if err := decode(resp.Body, &result, "preview api keys list"); err != nil {
		return nil, err
	}

	return &result, nil
}
