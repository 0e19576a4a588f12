package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/contentful-labs/cma-client/internal/constants"
	"github.com/contentful-labs/cma-client/internal/http"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// Client implements the cma.Client interface.
type Client struct {
	httpClient  *http.Client
	endpoints   cma.EndpointTable
	builder     *cma.Builder
	resolver    *cma.Resolver
	logger      cma.Logger
	spaceID     string
	environment string

	// Resource clients
	spaces           cma.SpacesClient
	environments     cma.EnvironmentsClient
	entries          cma.EntriesClient
	assets           cma.AssetsClient
	contentTypes     cma.ContentTypesClient
	editorInterfaces cma.EditorInterfacesClient
	snapshots        cma.SnapshotsClient
	locales          cma.LocalesClient
	tags             cma.TagsClient
	apiKeys          cma.APIKeysClient
	webhooks         cma.WebhooksClient
	roles            cma.RolesClient
	uploads          cma.UploadsClient
	organizations    cma.OrganizationsClient
	users            cma.UsersClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *cma.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.UploadHost != "" {
		httpOpts = append(httpOpts, http.WithUploadURL(config.UploadHost))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	httpOpts = append(httpOpts, http.WithRateLimitConfig(config.MaxRateLimitRetries, config.MaxRateLimitWait))

	if config.RequestsPerSecond > 0 {
		httpOpts = append(httpOpts, http.WithRequestInterceptor(http.ThrottleInterceptor(config.RequestsPerSecond)))
	}

	if len(config.ExtraHeaders) > 0 {
		httpOpts = append(httpOpts, http.WithRequestInterceptor(http.HeaderInterceptor(config.ExtraHeaders)))
	}

	return httpOpts
}

// New creates a new CMA client from the given configuration.
func New(config *cma.Config) (*Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.AccessToken == "" {
		return nil, cma.ErrAccessTokenRequired
	}

	host := config.Host
	if host == "" {
		host = constants.DefaultHost
	}

	environment := config.Environment
	if environment == "" {
		environment = constants.DefaultEnvironment
	}

	httpClient := http.NewClient(host, config.AccessToken, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:  httpClient,
		endpoints:   cma.DefaultEndpoints(),
		builder:     cma.NewBuilder(),
		logger:      config.Logger,
		spaceID:     config.SpaceID,
		environment: environment,
	}

	resolverOpts := []cma.ResolverOption{cma.WithResolverBuilder(client.builder)}
	if config.Logger != nil {
		resolverOpts = append(resolverOpts, cma.WithResolverLogger(config.Logger))
	}

	client.resolver = cma.NewResolver(client, client.endpoints, resolverOpts...)

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.spaces = NewSpacesClient(c.httpClient, c.endpoints)
	c.environments = NewEnvironmentsClient(c.httpClient, c.endpoints, c.spaceID)
	c.entries = NewEntriesClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.assets = NewAssetsClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.contentTypes = NewContentTypesClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.editorInterfaces = NewEditorInterfacesClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.snapshots = NewSnapshotsClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.locales = NewLocalesClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.tags = NewTagsClient(c.httpClient, c.endpoints, c.spaceID, c.environment)
	c.apiKeys = NewAPIKeysClient(c.httpClient, c.endpoints, c.spaceID)
	c.webhooks = NewWebhooksClient(c.httpClient, c.endpoints, c.spaceID)
	c.roles = NewRolesClient(c.httpClient, c.endpoints, c.spaceID)
	c.uploads = NewUploadsClient(c.httpClient, c.endpoints, c.spaceID)
	c.organizations = NewOrganizationsClient(c.httpClient, c.endpoints)
	c.users = NewUsersClient(c.httpClient, c.endpoints)
}

// Resource client accessors

// Spaces implements cma.Client.Spaces.
func (c *Client) Spaces() cma.SpacesClient { return c.spaces }

// Environments implements cma.Client.Environments.
func (c *Client) Environments() cma.EnvironmentsClient { return c.environments }

// Entries implements cma.Client.Entries.
func (c *Client) Entries() cma.EntriesClient { return c.entries }

// Assets implements cma.Client.Assets.
func (c *Client) Assets() cma.AssetsClient { return c.assets }

// ContentTypes implements cma.Client.ContentTypes.
func (c *Client) ContentTypes() cma.ContentTypesClient { return c.contentTypes }

// EditorInterfaces implements cma.Client.EditorInterfaces.
func (c *Client) EditorInterfaces() cma.EditorInterfacesClient { return c.editorInterfaces }

// Snapshots implements cma.Client.Snapshots.
func (c *Client) Snapshots() cma.SnapshotsClient { return c.snapshots }

// Locales implements cma.Client.Locales.
func (c *Client) Locales() cma.LocalesClient { return c.locales }

// Tags implements cma.Client.Tags.
func (c *Client) Tags() cma.TagsClient { return c.tags }

// APIKeys implements cma.Client.APIKeys.
func (c *Client) APIKeys() cma.APIKeysClient { return c.apiKeys }

// Webhooks implements cma.Client.Webhooks.
func (c *Client) Webhooks() cma.WebhooksClient { return c.webhooks }

// Roles implements cma.Client.Roles.
func (c *Client) Roles() cma.RolesClient { return c.roles }

// Uploads implements cma.Client.Uploads.
func (c *Client) Uploads() cma.UploadsClient { return c.uploads }

// Organizations implements cma.Client.Organizations.
func (c *Client) Organizations() cma.OrganizationsClient { return c.organizations }

// Users implements cma.Client.Users.
func (c *Client) Users() cma.UsersClient { return c.users }

// Resolver implements cma.Client.Resolver.
func (c *Client) Resolver() *cma.Resolver { return c.resolver }

// GetResource implements cma.LinkRequester for the link resolver.
func (c *Client) GetResource(ctx context.Context, host, path string, query url.Values) ([]byte, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Host:   host,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Raw implements cma.Client.Raw: it dispatches an arbitrary request against
// the management host and builds whatever comes back. Responses without a
// body (deletes, processing triggers) yield nil.
func (c *Client) Raw(ctx context.Context, method, path string, body interface{}) (cma.Resource, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	resource, err := c.builder.Build(resp.Body, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s %s response: %w", method, path, err)
	}

	return resource, nil
}

// loggerAdapter adapts cma.Logger to the transport's logger interface.
type loggerAdapter struct {
	logger cma.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// decode unmarshals a response body into out, wrapping parse failures with
// the operation name.
func decode(body []byte, out interface{}, what string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", what, err)
	}

	return nil
}
