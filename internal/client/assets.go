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

// AssetsClient implements cma.AssetsClient.
type AssetsClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewAssetsClient creates a new assets client scoped to one environment.
func NewAssetsClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *AssetsClient {
	return &AssetsClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *AssetsClient) path(assetID string) (string, error) {
	return c.endpoints.Expand(cma.KindAsset, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
	}, assetID)
}

// Create implements cma.AssetsClient.Create.
func (c *AssetsClient) Create(ctx context.Context, request *cma.AssetCreateRequest) (*cma.Asset, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}

	var asset cma.Asset
	if err := decode(resp.Body, &asset, "asset"); err != nil {
		return nil, err
	}

	return &asset, nil
}

// CreateWithID implements cma.AssetsClient.CreateWithID.
func (c *AssetsClient) CreateWithID(ctx context.Context, assetID string, request *cma.AssetCreateRequest) (*cma.Asset, error) {
	path, err := c.path(assetID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating asset %q: %w", assetID, err)
	}

	var asset cma.Asset
	if err := decode(resp.Body, &asset, "asset"); err != nil {
		return nil, err
	}

	return &asset, nil
}

// Get implements cma.AssetsClient.Get.
func (c *AssetsClient) Get(ctx context.Context, assetID string) (*cma.Asset, error) {
	path, err := c.path(assetID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset %q: %w", assetID, err)
	}

	var asset cma.Asset
	if err := decode(resp.Body, &asset, "asset"); err != nil {
		return nil, err
	}

	return &asset, nil
}

// List implements cma.AssetsClient.List.
func (c *AssetsClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Asset], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists assets at an explicit path for the pagination
// helpers.
func (c *AssetsClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Asset], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	var result cma.Collection[cma.Asset]
	if err := decode(resp.Body, &result, "assets list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.AssetsClient.Update.
func (c *AssetsClient) Update(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	sys := asset.GetSys()
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
		Body:    &cma.AssetCreateRequest{Fields: asset.Fields},
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating asset %q: %w", sys.ID, err)
	}

	return c.refresh(asset, resp.Body)
}

// Delete implements cma.AssetsClient.Delete.
func (c *AssetsClient) Delete(ctx context.Context, assetID string, version int) error {
	path, err := c.path(assetID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodDelete,
		Path:    path,
		Headers: map[string]string{constants.HeaderVersion: fmt.Sprintf("%d", version)},
	})
	if err != nil {
		return fmt.Errorf("deleting asset %q: %w", assetID, err)
	}

	return nil
}

// Process implements cma.AssetsClient.Process: it triggers server-side
// file processing for one locale. The response has no body; the caller
// re-fetches the asset to observe the processed file.
func (c *AssetsClient) Process(ctx context.Context, asset *cma.Asset, locale string) error {
	sys := asset.GetSys()
	if sys == nil || sys.ID == "" {
		return ErrMissingVersion
	}

	version, err := writeVersion(sys)
	if err != nil {
		return err
	}

	path, err := c.path(sys.ID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path + "/files/" + url.PathEscape(locale) + "/process",
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return fmt.Errorf("processing asset %q locale %q: %w", sys.ID, locale, err)
	}

	return nil
}

// Publish implements cma.AssetsClient.Publish.
func (c *AssetsClient) Publish(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.action(ctx, asset, nethttp.MethodPut, "published", "publishing")
}

// Unpublish implements cma.AssetsClient.Unpublish.
func (c *AssetsClient) Unpublish(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.action(ctx, asset, nethttp.MethodDelete, "published", "unpublishing")
}

// Archive implements cma.AssetsClient.Archive.
func (c *AssetsClient) Archive(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.action(ctx, asset, nethttp.MethodPut, "archived", "archiving")
}

// Unarchive implements cma.AssetsClient.Unarchive.
func (c *AssetsClient) Unarchive(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.action(ctx, asset, nethttp.MethodDelete, "archived", "unarchiving")
}

func (c *AssetsClient) action(ctx context.Context, asset *cma.Asset, method, action, doing string) (*cma.Asset, error) {
	sys := asset.GetSys()
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
		Method:  method,
		Path:    path + "/" + action,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("%s asset %q: %w", doing, sys.ID, err)
	}

	return c.refresh(asset, resp.Body)
}

func (c *AssetsClient) refresh(asset *cma.Asset, body []byte) (*cma.Asset, error) {
	var updated cma.Asset
	if err := decode(body, &updated, "asset"); err != nil {
		return nil, err
	}

	*asset = updated

	return asset, nil
}
