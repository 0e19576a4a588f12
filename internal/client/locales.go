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

// LocalesClient implements cma.LocalesClient.
type LocalesClient struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	spaceID     string
	environment string
}

// NewLocalesClient creates a new locales client.
func NewLocalesClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID, environment string) *LocalesClient {
	return &LocalesClient{
		httpClient:  httpClient,
		endpoints:   endpoints,
		spaceID:     spaceID,
		environment: environment,
	}
}

func (c *LocalesClient) path(localeID string) (string, error) {
	return c.endpoints.Expand(cma.KindLocale, map[string]string{
		"space":       c.spaceID,
		"environment": c.environment,
	}, localeID)
}

// Create implements cma.LocalesClient.Create.
func (c *LocalesClient) Create(ctx context.Context, request *cma.LocaleCreateRequest) (*cma.Locale, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating locale: %w", err)
	}

	var locale cma.Locale
	if err := decode(resp.Body, &locale, "locale"); err != nil {
		return nil, err
	}

	return &locale, nil
}

// Get implements cma.LocalesClient.Get.
func (c *LocalesClient) Get(ctx context.Context, localeID string) (*cma.Locale, error) {
	path, err := c.path(localeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting locale %q: %w", localeID, err)
	}

	var locale cma.Locale
	if err := decode(resp.Body, &locale, "locale"); err != nil {
		return nil, err
	}

	return &locale, nil
}

// List implements cma.LocalesClient.List.
func (c *LocalesClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Locale], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists locales at an explicit path.
func (c *LocalesClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Locale], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}

	var result cma.Collection[cma.Locale]
	if err := decode(resp.Body, &result, "locales list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.LocalesClient.Update.
func (c *LocalesClient) Update(ctx context.Context, locale *cma.Locale) (*cma.Locale, error) {
	sys := locale.GetSys()
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

	request := &cma.LocaleCreateRequest{
		Name:              locale.Name,
		Code:              locale.Code,
		FallbackCode:      locale.FallbackCode,
		Optional:          locale.Optional,
		ContentDelivery:   locale.ContentDelivery,
		ContentManagement: locale.ContentManagement,
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating locale %q: %w", sys.ID, err)
	}

	var updated cma.Locale
	if err := decode(resp.Body, &updated, "locale"); err != nil {
		return nil, err
	}

	*locale = updated

	return locale, nil
}

// Delete implements cma.LocalesClient.Delete.
func (c *LocalesClient) Delete(ctx context.Context, localeID string) error {
	path, err := c.path(localeID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting locale %q: %w", localeID, err)
	}

	return nil
}
