package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/contentful-labs/cma-client/internal/constants"
	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// EditorInterfacesClient implements cma.EditorInterfacesClient. An editor
// interface exists implicitly for every content type, so there are no
// create, list, or delete operations.
type EditorInterfacesClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewEditorInterfacesClient creates a new editor interfaces client.
func NewEditorInterfacesClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *EditorInterfacesClient {
	return &EditorInterfacesClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *EditorInterfacesClient) path(contentTypeID string) (string, error) {
	return c.endpoints.Expand(cma.KindEditorInterface, map[string]string{
		"space":        c.spaceID,
		"environment":  c.environment,
		"content_type": contentTypeID,
	}, "")
}

// Get implements cma.EditorInterfacesClient.Get.
func (c *EditorInterfacesClient) Get(ctx context.Context, contentTypeID string) (*cma.EditorInterface, error) {
	path, err := c.path(contentTypeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting editor interface for content type %q: %w", contentTypeID, err)
	}

	var editorInterface cma.EditorInterface
	if err := decode(resp.Body, &editorInterface, "editor interface"); err != nil {
		return nil, err
	}

	return &editorInterface, nil
}

// Update implements cma.EditorInterfacesClient.Update.
func (c *EditorInterfacesClient) Update(ctx context.Context, contentTypeID string, editorInterface *cma.EditorInterface) (*cma.EditorInterface, error) {
	sys := editorInterface.GetSys()
	if sys == nil {
		return nil, ErrMissingVersion
	}

	version, err := writeVersion(sys)
	if err != nil {
		return nil, err
	}

	path, err := c.path(contentTypeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    map[string]interface{}{"controls": editorInterface.Controls},
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating editor interface for content type %q: %w", contentTypeID, err)
	}

	var updated cma.EditorInterface
	if err := decode(resp.Body, &updated, "editor interface"); err != nil {
		return nil, err
	}

	*editorInterface = updated

	return editorInterface, nil
}
