package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/contentful-labs/cma-client/internal/constants"
	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// UploadsClient implements cma.UploadsClient. Uploads live on a separate
// host and carry raw bytes instead of the management media type.
type UploadsClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
	spaceID    string
}

// NewUploadsClient creates a new uploads client.
func NewUploadsClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID string) *UploadsClient {
	return &UploadsClient{
		httpClient: httpClient,
		endpoints:  endpoints,
		spaceID:    spaceID,
	}
}

func (c *UploadsClient) path(uploadID string) (string, error) {
	return c.endpoints.Expand(cma.KindUpload, map[string]string{
		"space": c.spaceID,
	}, uploadID)
}

// Create implements cma.UploadsClient.Create, posting the raw bytes to the
// upload host. The returned upload id is referenced from asset files via an
// uploadFrom link.
func (c *UploadsClient) Create(ctx context.Context, data []byte) (*cma.Upload, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPost,
		Host:    cma.HostUpload,
		Path:    path,
		RawBody: data,
		Headers: map[string]string{"Content-Type": constants.ContentTypeOctetStream},
	})
	if err != nil {
		return nil, fmt.Errorf("creating upload: %w", err)
	}

	var upload cma.Upload
	if err := decode(resp.Body, &upload, "upload"); err != nil {
		return nil, err
	}

	return &upload, nil
}

// Get implements cma.UploadsClient.Get. Uploads expire after 24 hours, so a
// not-found response is expected for old ids.
func (c *UploadsClient) Get(ctx context.Context, uploadID string) (*cma.Upload, error) {
	path, err := c.path(uploadID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodGet,
		Host:   cma.HostUpload,
		Path:   path,
	})
	if err != nil {
		return nil, fmt.Errorf("getting upload %q: %w", uploadID, err)
	}

	var upload cma.Upload
	if err := decode(resp.Body, &upload, "upload"); err != nil {
		return nil, err
	}

	return &upload, nil
}

// Delete implements cma.UploadsClient.Delete.
func (c *UploadsClient) Delete(ctx context.Context, uploadID string) error {
	path, err := c.path(uploadID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Host:   cma.HostUpload,
		Path:   path,
	})
	if err != nil {
		return fmt.Errorf("deleting upload %q: %w", uploadID, err)
	}

	return nil
}
