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

// EntriesClient implements cma.EntriesClient.
type EntriesClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewEntriesClient creates a new entries client scoped to one environment.
func NewEntriesClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *EntriesClient {
	return &EntriesClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *EntriesClient) path(entryID string) (string, error) {
	return c.endpoints.Expand(cma.KindEntry, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
	}, entryID)
}

// Create implements cma.EntriesClient.Create: the server assigns the id.
// The content type travels as a discriminator header, not in the body.
func (c *EntriesClient) Create(ctx context.Context, contentTypeID string, request *cma.EntryCreateRequest) (*cma.Entry, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPost,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderContentTypeID: contentTypeID},
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	var entry cma.Entry
	if err := decode(resp.Body, &entry, "entry"); err != nil {
		return nil, err
	}

	return &entry, nil
}

// CreateWithID implements cma.EntriesClient.CreateWithID: an explicit id
// turns the create into a PUT on the entry path.
func (c *EntriesClient) CreateWithID(ctx context.Context, entryID, contentTypeID string, request *cma.EntryCreateRequest) (*cma.Entry, error) {
	path, err := c.path(entryID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderContentTypeID: contentTypeID},
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry %q: %w", entryID, err)
	}

	var entry cma.Entry
	if err := decode(resp.Body, &entry, "entry"); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Get implements cma.EntriesClient.Get.
func (c *EntriesClient) Get(ctx context.Context, entryID string) (*cma.Entry, error) {
	path, err := c.path(entryID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting entry %q: %w", entryID, err)
	}

	var entry cma.Entry
	if err := decode(resp.Body, &entry, "entry"); err != nil {
		return nil, err
	}

	return &entry, nil
}

// List implements cma.EntriesClient.List.
func (c *EntriesClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Entry], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists entries at an explicit path, which the pagination
// helpers use to walk pages.
func (c *EntriesClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Entry], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var result cma.Collection[cma.Entry]
	if err := decode(resp.Body, &result, "entries list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.EntriesClient.Update: a versioned PUT of the
// entry's fields. The passed entry is refreshed in place so existing
// references observe the new version.
func (c *EntriesClient) Update(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	sys := entry.GetSys()
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
		Body:    entry.Body(),
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating entry %q: %w", sys.ID, err)
	}

	return c.refresh(entry, resp.Body)
}

// Delete implements cma.EntriesClient.Delete.
func (c *EntriesClient) Delete(ctx context.Context, entryID string, version int) error {
	path, err := c.path(entryID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodDelete,
		Path:    path,
		Headers: map[string]string{constants.HeaderVersion: fmt.Sprintf("%d", version)},
	})
	if err != nil {
		return fmt.Errorf("deleting entry %q: %w", entryID, err)
	}

	return nil
}

// Publish implements cma.EntriesClient.Publish.
func (c *EntriesClient) Publish(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.action(ctx, entry, nethttp.MethodPut, "published", "publishing")
}

// Unpublish implements cma.EntriesClient.Unpublish.
func (c *EntriesClient) Unpublish(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.action(ctx, entry, nethttp.MethodDelete, "published", "unpublishing")
}

// Archive implements cma.EntriesClient.Archive.
func (c *EntriesClient) Archive(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.action(ctx, entry, nethttp.MethodPut, "archived", "archiving")
}

// Unarchive implements cma.EntriesClient.Unarchive.
func (c *EntriesClient) Unarchive(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.action(ctx, entry, nethttp.MethodDelete, "archived", "unarchiving")
}

// action performs one of the versioned state transitions on the entry's
// action sub-path and refreshes the entry in place from the response.
func (c *EntriesClient) action(ctx context.Context, entry *cma.Entry, method, action, doing string) (*cma.Entry, error) {
	sys := entry.GetSys()
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
		return nil, fmt.Errorf("%s entry %q: %w", doing, sys.ID, err)
	}

	return c.refresh(entry, resp.Body)
}

// refresh decodes a response body into the caller's entry so the object it
// already holds reflects the fresh server state.
func (c *EntriesClient) refresh(entry *cma.Entry, body []byte) (*cma.Entry, error) {
	var updated cma.Entry
	if err := decode(body, &updated, "entry"); err != nil {
		return nil, err
	}

	*entry = updated

	return entry, nil
}
