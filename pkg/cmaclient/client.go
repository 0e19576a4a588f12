// Package cmaclient provides the main entry point for creating Content
// Management API clients
package cmaclient

import (
	"fmt"
	"strings"

	"github.com/contentful-labs/cma-client/internal/client"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// New creates a new Content Management API client.
func New(config *cma.Config) (cma.Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.AccessToken == "" {
		return nil, cma.ErrAccessTokenRequired
	}

	if config.Host != "" {
		config.Host = normalizeHost(config.Host)
	}

	if config.UploadHost != "" {
		config.UploadHost = normalizeHost(config.UploadHost)
	}

	cmaClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cmaClient, nil
}

// NewWithToken creates a client against the default hosts from just an
// access token.
func NewWithToken(accessToken string) (cma.Client, error) {
	return New(&cma.Config{AccessToken: accessToken})
}

// NewScoped creates a client whose content clients operate on the given
// space and environment. An empty environment selects "master".
func NewScoped(accessToken, spaceID, environment string) (cma.Client, error) {
	return New(&cma.Config{
		AccessToken: accessToken,
		SpaceID:     spaceID,
		Environment: environment,
	})
}

// normalizeHost ensures a host has a scheme and no trailing slash.
func normalizeHost(host string) string {
	host = strings.TrimSuffix(host, "/")

	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}

	return host
}
