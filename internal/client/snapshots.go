package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// SnapshotsClient implements cma.SnapshotsClient. Snapshots are created by
// the platform on publish, so this client is read-only.
type SnapshotsClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewSnapshotsClient creates a new snapshots client.
func NewSnapshotsClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *SnapshotsClient {
	return &SnapshotsClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *SnapshotsClient) path(entryID, snapshotID string) (string, error) {
	return c.endpoints.Expand(cma.KindSnapshot, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
		"entry":       entryID,
	}, snapshotID)
}

func (c *SnapshotsClient) contentTypePath(contentTypeID, snapshotID string) (string, error) {
	return c.endpoints.Expand(cma.KindContentTypeSnapshot, map[string]string{
		"space":        c.spaceID,
		"environment":  c.environment,
		"content_type": contentTypeID,
	}, snapshotID)
}

// ListForEntry implements cma.SnapshotsClient.ListForEntry.
func (c *SnapshotsClient) ListForEntry(ctx context.Context, entryID string, params *cma.QueryParams) (*cma.Collection[cma.Snapshot], error) {
	path, err := c.path(entryID, "")
	if err != nil {
		return nil, err
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots for entry %q: %w", entryID, err)
	}

	var result cma.Collection[cma.Snapshot]
	if err := decode(resp.Body, &result, "snapshots list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetForEntry implements cma.SnapshotsClient.GetForEntry.
func (c *SnapshotsClient) GetForEntry(ctx context.Context, entryID, snapshotID string) (*cma.Snapshot, error) {
	path, err := c.path(entryID, snapshotID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot %q of entry %q: %w", snapshotID, entryID, err)
	}

	var snapshot cma.Snapshot
	if err := decode(resp.Body, &snapshot, "snapshot"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// ListForContentType implements cma.SnapshotsClient.ListForContentType.
func (c *SnapshotsClient) ListForContentType(ctx context.Context, contentTypeID string, params *cma.QueryParams) (*cma.Collection[cma.Snapshot], error) {
	path, err := c.contentTypePath(contentTypeID, "")
	if err != nil {
		return nil, err
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots for content type %q: %w", contentTypeID, err)
	}

	var result cma.Collection[cma.Snapshot]
	if err := decode(resp.Body, &result, "snapshots list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetForContentType implements cma.SnapshotsClient.GetForContentType.
func (c *SnapshotsClient) GetForContentType(ctx context.Context, contentTypeID, snapshotID string) (*cma.Snapshot, error) {
	path, err := c.contentTypePath(contentTypeID, snapshotID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot %q of content type %q: %w", snapshotID, contentTypeID, err)
	}

	var snapshot cma.Snapshot
	if err := decode(resp.Body, &snapshot, "snapshot"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
