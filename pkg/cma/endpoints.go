package cma

import (
	"fmt"
	"net/url"

	"github.com/jtacoma/uritemplates"
)

// Hosts an endpoint can live on. Binary uploads use a host distinct from
// the management API.
const (
	HostManagement = "management"
	HostUpload     = "upload"
)

// Endpoint describes where a resource kind lives: which host, the URI
// template for its collection, and the path parameters the template
// requires.
type Endpoint struct {
	Host     string
	Template string
	Params   []string
}

// EndpointTable maps a resource kind to its endpoint configuration. It is
// an explicit value constructed at client startup and passed by reference
// into the dispatcher and resolver; there is no process-wide table.
type EndpointTable map[string]Endpoint

// DefaultEndpoints returns the endpoint configuration for every supported
// resource kind.
func DefaultEndpoints() EndpointTable {
	return EndpointTable{
		KindSpace: {
			Host:     HostManagement,
			Template: "/spaces",
		},
		KindEnvironment: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments",
			Params:   []string{"space"},
		},
		KindContentType: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/content_types",
			Params:   []string{"space", "environment"},
		},
		KindEntry: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/entries",
			Params:   []string{"space", "environment"},
		},
		KindAsset: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/assets",
			Params:   []string{"space", "environment"},
		},
		KindLocale: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/locales",
			Params:   []string{"space", "environment"},
		},
		KindTag: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/tags",
			Params:   []string{"space", "environment"},
		},
		KindEditorInterface: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/content_types/{content_type}/editor_interface",
			Params:   []string{"space", "environment", "content_type"},
		},
		KindSnapshot: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/entries/{entry}/snapshots",
			Params:   []string{"space", "environment", "entry"},
		},
		KindContentTypeSnapshot: {
			Host:     HostManagement,
			Template: "/spaces/{space}/environments/{environment}/content_types/{content_type}/snapshots",
			Params:   []string{"space", "environment", "content_type"},
		},
		KindAPIKey: {
			Host:     HostManagement,
			Template: "/spaces/{space}/api_keys",
			Params:   []string{"space"},
		},
		KindPreviewAPIKey: {
			Host:     HostManagement,
			Template: "/spaces/{space}/preview_api_keys",
			Params:   []string{"space"},
		},
		KindWebhook: {
			Host:     HostManagement,
			Template: "/spaces/{space}/webhook_definitions",
			Params:   []string{"space"},
		},
		// Call overviews live under /webhooks, not /webhook_definitions.
		KindWebhookHealth: {
			Host:     HostManagement,
			Template: "/spaces/{space}/webhooks/{webhook}/health",
			Params:   []string{"space", "webhook"},
		},
		KindRole: {
			Host:     HostManagement,
			Template: "/spaces/{space}/roles",
			Params:   []string{"space"},
		},
		KindUpload: {
			Host:     HostUpload,
			Template: "/spaces/{space}/uploads",
			Params:   []string{"space"},
		},
		KindOrganization: {
			Host:     HostManagement,
			Template: "/organizations",
		},
		KindUser: {
			Host:     HostManagement,
			Template: "/users",
		},
	}
}

// Lookup returns the endpoint for a kind, failing on unknown kinds so a
// version mismatch never produces a malformed request.
func (t EndpointTable) Lookup(kind string) (Endpoint, error) {
	endpoint, ok := t[kind]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}

	return endpoint, nil
}

// Expand builds the path for a kind by substituting the named placeholders
// from params. A missing required parameter is an error rather than a
// malformed path. If resourceID is non-empty it is appended as the final
// path segment, which is how "create with explicit id" (PUT) is told apart
// from "create with server-assigned id" (POST).
func (t EndpointTable) Expand(kind string, params map[string]string, resourceID string) (string, error) {
	endpoint, err := t.Lookup(kind)
	if err != nil {
		return "", err
	}

	path, err := endpoint.Expand(params)
	if err != nil {
		return "", err
	}

	if resourceID != "" {
		path += "/" + url.PathEscape(resourceID)
	}

	return path, nil
}

// Expand substitutes the endpoint's template placeholders from params.
func (e Endpoint) Expand(params map[string]string) (string, error) {
	vars := make(map[string]interface{}, len(e.Params))

	for _, name := range e.Params {
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q", ErrMissingPathParam, name)
		}

		vars[name] = value
	}

	tmpl, err := uritemplates.Parse(e.Template)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint template %q: %w", e.Template, err)
	}

	path, err := tmpl.Expand(vars)
	if err != nil {
		return "", fmt.Errorf("expanding endpoint template %q: %w", e.Template, err)
	}

	return path, nil
}
