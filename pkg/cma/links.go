package cma

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// LinkRequester issues the GET behind a link resolution. It is implemented
// by the concrete client so the resolver stays free of transport details.
type LinkRequester interface {
	GetResource(ctx context.Context, host, path string, query url.Values) ([]byte, error)
}

// Resolver turns links into fully fetched resources on demand. Resolution
// is demand-driven and one level at a time: resolving a resource does not
// resolve the links inside it, and it never mutates the original link.
type Resolver struct {
	requester LinkRequester
	endpoints EndpointTable
	builder   *Builder
	logger    Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used to report skipped items during
// collection resolution.
func WithResolverLogger(logger Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithResolverBuilder replaces the default resource builder.
func WithResolverBuilder(builder *Builder) ResolverOption {
	return func(r *Resolver) {
		r.builder = builder
	}
}

// NewResolver creates a resolver using the given requester and endpoint
// table.
func NewResolver(requester LinkRequester, endpoints EndpointTable, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		requester: requester,
		endpoints: endpoints,
		builder:   NewBuilder(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve fetches the resource a link points at. params supplies scoping
// path parameters (space, environment, ...); scoping embedded in the link
// itself takes precedence. A "locale" param travels as a query parameter.
// Each call builds an independent resource: resolving the same link twice
// yields two objects sharing no state.
func (r *Resolver) Resolve(ctx context.Context, link *Link, params map[string]string) (Resource, error) {
	if link == nil || link.Sys.ID == "" {
		return nil, ErrNilLink
	}

	endpoint, err := r.endpoints.Lookup(link.Sys.LinkType)
	if err != nil {
		return nil, err
	}

	pathParams, query := r.scopeParams(link, params)

	path, err := r.endpoints.Expand(link.Sys.LinkType, pathParams, link.Sys.ID)
	if err != nil {
		return nil, err
	}

	body, err := r.requester.GetResource(ctx, endpoint.Host, path, query)
	if err != nil {
		return nil, fmt.Errorf("resolving %s link %q: %w", link.Sys.LinkType, link.Sys.ID, err)
	}

	resource, err := r.builder.Build(body, nil)
	if err != nil {
		return nil, fmt.Errorf("building resolved %s %q: %w", link.Sys.LinkType, link.Sys.ID, err)
	}

	return resource, nil
}

// ResolveErrors aggregates the per-item failures of a collection
// resolution.
type ResolveErrors struct {
	Errors []error
}

// Error implements the error interface.
func (e *ResolveErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}

	return fmt.Sprintf("%d link(s) failed to resolve: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// ResolveCollection eagerly resolves an ordered set of links and returns
// the materialized resources in the same order. The policy for individual
// failures is skip-and-continue: a link that fails to resolve is left out
// of the result instead of aborting the whole collection, and the failures
// are reported together as a *ResolveErrors alongside the resolved subset.
func (r *Resolver) ResolveCollection(ctx context.Context, links []*Link, params map[string]string) ([]Resource, error) {
	resources := make([]Resource, 0, len(links))

	var failed []error

	for _, link := range links {
		resource, err := r.Resolve(ctx, link, params)
		if err != nil {
			if r.logger != nil {
				fields := map[string]interface{}{"error": err.Error()}
				if link != nil {
					fields["linkType"] = link.Sys.LinkType
					fields["id"] = link.Sys.ID
				}

				r.logger.Warn("skipping unresolvable link", fields)
			}

			failed = append(failed, err)

			continue
		}

		resources = append(resources, resource)
	}

	if len(failed) > 0 {
		return resources, &ResolveErrors{Errors: failed}
	}

	return resources, nil
}

// ResolveReference resolves an unresolved reference into a resolved one,
// returning a new value. Already-resolved references pass through.
func (r *Resolver) ResolveReference(ctx context.Context, ref Reference, params map[string]string) (Reference, error) {
	if ref.IsResolved() {
		return ref, nil
	}

	resource, err := r.Resolve(ctx, ref.Link(), params)
	if err != nil {
		return ref, err
	}

	return Resolved(resource), nil
}

// scopeParams merges caller-supplied scoping with the scoping embedded in
// the link's sys block. The locale is a query parameter, not a path
// parameter.
func (r *Resolver) scopeParams(link *Link, params map[string]string) (map[string]string, url.Values) {
	pathParams := make(map[string]string, len(params))
	query := url.Values{}

	for key, value := range params {
		if key == "locale" {
			query.Set("locale", value)

			continue
		}

		pathParams[key] = value
	}

	// Scoping embedded in the link wins over caller-supplied parameters.
	if link.Sys.Space != nil && link.Sys.Space.Sys.ID != "" {
		pathParams["space"] = link.Sys.Space.Sys.ID
	}

	if link.Sys.Environment != nil && link.Sys.Environment.Sys.ID != "" {
		pathParams["environment"] = link.Sys.Environment.Sys.ID
	}

	return pathParams, query
}
