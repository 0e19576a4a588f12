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

// TagsClient implements cma.TagsClient.
type TagsClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *TagsClient {
	return &TagsClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *TagsClient) path(tagID string) (string, error) {
	return c.endpoints.Expand(cma.KindTag, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
	}, tagID)
}

// tagBody is the wire shape of a tag write. Visibility travels inside sys,
// not at the top level.
type tagBody struct {
	Name string `json:"name"`
	Sys  struct {
		Visibility string `json:"visibility,omitempty"`
	} `json:"sys"`
}

// CreateWithID implements cma.TagsClient.CreateWithID. Tags always get an
// explicit id; visibility is fixed at creation time.
func (c *TagsClient) CreateWithID(ctx context.Context, tagID string, request *cma.TagCreateRequest) (*cma.Tag, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	path, err := c.path(tagID)
	if err != nil {
		return nil, err
	}

	body := tagBody{Name: request.Name}
	body.Sys.Visibility = request.Visibility

	resp, err := c.httpClient.Put(ctx, path, &body)
	if err != nil {
		return nil, fmt.Errorf("creating tag %q: %w", tagID, err)
	}

	var tag cma.Tag
	if err := decode(resp.Body, &tag, "tag"); err != nil {
		return nil, err
	}

	return &tag, nil
}

// Get implements cma.TagsClient.Get.
func (c *TagsClient) Get(ctx context.Context, tagID string) (*cma.Tag, error) {
	path, err := c.path(tagID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tag %q: %w", tagID, err)
	}

	var tag cma.Tag
	if err := decode(resp.Body, &tag, "tag"); err != nil {
		return nil, err
	}

	return &tag, nil
}

// List implements cma.TagsClient.List.
func (c *TagsClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Tag], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists tags at an explicit path.
func (c *TagsClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Tag], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var result cma.Collection[cma.Tag]
	if err := decode(resp.Body, &result, "tags list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.TagsClient.Update. Only the name can change.
func (c *TagsClient) Update(ctx context.Context, tag *cma.Tag) (*cma.Tag, error) {
	sys := tag.GetSys()
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

	body := tagBody{Name: tag.Name}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    &body,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating tag %q: %w", sys.ID, err)
	}

	var updated cma.Tag
	if err := decode(resp.Body, &updated, "tag"); err != nil {
		return nil, err
	}

	*tag = updated

	return tag, nil
}

// Delete implements cma.TagsClient.Delete.
func (c *TagsClient) Delete(ctx context.Context, tagID string, version int) error {
	path, err := c.path(tagID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodDelete,
		Path:    path,
		Headers: map[string]string{constants.HeaderVersion: fmt.Sprintf("%d", version)},
	})
	if err != nil {
		return fmt.Errorf("deleting tag %q: %w", tagID, err)
	}

	return nil
}
