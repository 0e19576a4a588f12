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

// ContentTypesClient implements cma.ContentTypesClient.
type ContentTypesClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewContentTypesClient creates a new content types client.
func NewContentTypesClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *ContentTypesClient {
	return &ContentTypesClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *ContentTypesClient) path(contentTypeID string) (string, error) {
	return c.endpoints.Expand(cma.KindContentType, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
	}, contentTypeID)
}

// Create implements cma.ContentTypesClient.Create.
func (c *ContentTypesClient) Create(ctx context.Context, request *cma.ContentTypeCreateRequest) (*cma.ContentType, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating content type: %w", err)
	}

	var contentType cma.ContentType
	if err := decode(resp.Body, &contentType, "content type"); err != nil {
		return nil, err
	}

	return &contentType, nil
}

// CreateWithID implements cma.ContentTypesClient.CreateWithID.
func (c *ContentTypesClient) CreateWithID(ctx context.Context, contentTypeID string, request *cma.ContentTypeCreateRequest) (*cma.ContentType, error) {
	path, err := c.path(contentTypeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating content type %q: %w", contentTypeID, err)
	}

	var contentType cma.ContentType
	if err := decode(resp.Body, &contentType, "content type"); err != nil {
		return nil, err
	}

	return &contentType, nil
}

// Get implements cma.ContentTypesClient.Get.
func (c *ContentTypesClient) Get(ctx context.Context, contentTypeID string) (*cma.ContentType, error) {
	path, err := c.path(contentTypeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting content type %q: %w", contentTypeID, err)
	}

	var contentType cma.ContentType
	if err := decode(resp.Body, &contentType, "content type"); err != nil {
		return nil, err
	}

	return &contentType, nil
}

// List implements cma.ContentTypesClient.List.
func (c *ContentTypesClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.ContentType], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists content types at an explicit path.
func (c *ContentTypesClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.ContentType], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing content types: %w", err)
	}

	var result cma.Collection[cma.ContentType]
	if err := decode(resp.Body, &result, "content types list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.ContentTypesClient.Update.
func (c *ContentTypesClient) Update(ctx context.Context, contentType *cma.ContentType) (*cma.ContentType, error) {
	sys := contentType.GetSys()
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

	request := &cma.ContentTypeCreateRequest{
		Name:         contentType.Name,
		Description:  contentType.Description,
		DisplayField: contentType.DisplayField,
		Fields:       contentType.Fields,
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating content type %q: %w", sys.ID, err)
	}

	return c.refresh(contentType, resp.Body)
}

// Delete implements cma.ContentTypesClient.Delete. The content type must
// be unpublished first.
func (c *ContentTypesClient) Delete(ctx context.Context, contentTypeID string) error {
	path, err := c.path(contentTypeID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting content type %q: %w", contentTypeID, err)
	}

	return nil
}

// Publish implements cma.ContentTypesClient.Publish, activating the
// content type for entry creation.
func (c *ContentTypesClient) Publish(ctx context.Context, contentType *cma.ContentType) (*cma.ContentType, error) {
	return c.action(ctx, contentType, nethttp.MethodPut, "publishing")
}

// Unpublish implements cma.ContentTypesClient.Unpublish.
func (c *ContentTypesClient) Unpublish(ctx context.Context, contentType *cma.ContentType) (*cma.ContentType, error) {
	return c.action(ctx, contentType, nethttp.MethodDelete, "unpublishing")
}

func (c *ContentTypesClient) action(ctx context.Context, contentType *cma.ContentType, method, doing string) (*cma.ContentType, error) {
	sys := contentType.GetSys()
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
		Path:    path + "/published",
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("%s content type %q: %w", doing, sys.ID, err)
	}

	return c.refresh(contentType, resp.Body)
}

func (c *ContentTypesClient) refresh(contentType *cma.ContentType, body []byte) (*cma.ContentType, error) {
	var updated cma.ContentType
	if err := decode(body, &updated, "content type"); err != nil {
		return nil, err
	}

	*contentType = updated

	return contentType, nil
}
