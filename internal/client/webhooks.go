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

// WebhooksClient implements cma.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
	spaceID    string
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID string) *WebhooksClient {
	return &WebhooksClient{
		httpClient: httpClient,
		endpoints:  endpoints,
		spaceID:    spaceID,
	}
}

func (c *WebhooksClient) path(webhookID string) (string, error) {
	return c.endpoints.Expand(cma.KindWebhook, map[string]string{
		"space": c.spaceID,
	}, webhookID)
}

// Create implements cma.WebhooksClient.Create.
func (c *WebhooksClient) Create(ctx context.Context, request *cma.WebhookCreateRequest) (*cma.Webhook, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	var webhook cma.Webhook
	if err := decode(resp.Body, &webhook, "webhook"); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// Get implements cma.WebhooksClient.Get.
func (c *WebhooksClient) Get(ctx context.Context, webhookID string) (*cma.Webhook, error) {
	path, err := c.path(webhookID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook %q: %w", webhookID, err)
	}

	var webhook cma.Webhook
	if err := decode(resp.Body, &webhook, "webhook"); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// List implements cma.WebhooksClient.List.
func (c *WebhooksClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Webhook], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists webhooks at an explicit path.
func (c *WebhooksClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Webhook], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var result cma.Collection[cma.Webhook]
	if err := decode(resp.Body, &result, "webhooks list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.WebhooksClient.Update. The request carries the new
// definition since stored webhooks never echo back basic-auth credentials.
func (c *WebhooksClient) Update(ctx context.Context, webhook *cma.Webhook, request *cma.WebhookCreateRequest) (*cma.Webhook, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	sys := webhook.GetSys()
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
		Body:    request,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating webhook %q: %w", sys.ID, err)
	}

	var updated cma.Webhook
	if err := decode(resp.Body, &updated, "webhook"); err != nil {
		return nil, err
	}

	*webhook = updated

	return webhook, nil
}

// Health implements cma.WebhooksClient.Health.
func (c *WebhooksClient) Health(ctx context.Context, webhookID string) (*cma.WebhookHealth, error) {
	path, err := c.endpoints.Expand(cma.KindWebhookHealth, map[string]string{
		"space":   c.spaceID,
		"webhook": webhookID,
	}, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook health %q: %w", webhookID, err)
	}

	var health cma.WebhookHealth
	if err := decode(resp.Body, &health, "webhook health"); err != nil {
		return nil, err
	}

	return &health, nil
}

// Delete implements cma.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, webhookID string) error {
	path, err := c.path(webhookID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting webhook %q: %w", webhookID, err)
	}

	return nil
}
