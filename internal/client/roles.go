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

// RolesClient implements cma.RolesClient.
type RolesClient struct {
	httpClient *http.Client
	endpoints  cma.EndpointTable
	spaceID    string
}

// NewRolesClient creates a new roles client.
func NewRolesClient(httpClient *http.Client, endpoints cma.EndpointTable, spaceID string) *RolesClient {
	return &RolesClient{
		httpClient: httpClient,
		endpoints:  endpoints,
		spaceID:    spaceID,
	}
}

func (c *RolesClient) path(roleID string) (string, error) {
	return c.endpoints.Expand(cma.KindRole, map[string]string{
		"space": c.spaceID,
	}, roleID)
}

// Create implements cma.RolesClient.Create.
func (c *RolesClient) Create(ctx context.Context, request *cma.RoleCreateRequest) (*cma.Role, error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	var role cma.Role
	if err := decode(resp.Body, &role, "role"); err != nil {
		return nil, err
	}

	return &role, nil
}

// Get implements cma.RolesClient.Get.
func (c *RolesClient) Get(ctx context.Context, roleID string) (*cma.Role, error) {
	path, err := c.path(roleID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting role %q: %w", roleID, err)
	}

	var role cma.Role
	if err := decode(resp.Body, &role, "role"); err != nil {
		return nil, err
	}

	return &role, nil
}

// List implements cma.RolesClient.List.
func (c *RolesClient) List(ctx context.Context, params *cma.QueryParams) (*cma.Collection[cma.Role], error) {
	path, err := c.path("")
	if err != nil {
		return nil, err
	}

	return c.ListWithPath(ctx, path, params)
}

// ListWithPath lists roles at an explicit path.
func (c *RolesClient) ListWithPath(ctx context.Context, path string, params *cma.QueryParams) (*cma.Collection[cma.Role], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	var result cma.Collection[cma.Role]
	if err := decode(resp.Body, &result, "roles list"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update implements cma.RolesClient.Update.
func (c *RolesClient) Update(ctx context.Context, role *cma.Role) (*cma.Role, error) {
	sys := role.GetSys()
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

	request := &cma.RoleCreateRequest{
		Name:        role.Name,
		Description: role.Description,
		Policies:    role.Policies,
		Permissions: role.Permissions,
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPut,
		Path:    path,
		Body:    request,
		Headers: map[string]string{constants.HeaderVersion: version},
	})
	if err != nil {
		return nil, fmt.Errorf("updating role %q: %w", sys.ID, err)
	}

	var updated cma.Role
	if err := decode(resp.Body, &updated, "role"); err != nil {
		return nil, err
	}

	*role = updated

	return role, nil
}

// Delete implements cma.RolesClient.Delete.
func (c *RolesClient) Delete(ctx context.Context, roleID string) error {
	path, err := c.path(roleID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting role %q: %w", roleID, err)
	}

	return nil
}
