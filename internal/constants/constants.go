package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Hosts.
const (
	// DefaultHost is the management API host.
	DefaultHost = "https://api.contentful.com"

	// DefaultUploadHost is the binary upload host.
	DefaultUploadHost = "https://upload.contentful.com"

	// DefaultEnvironment is the environment used when none is configured.
	DefaultEnvironment = "master"
)

// Media types.
const (
	// ContentTypeManagement is the versioned media type sent on every
	// request with a body.
	ContentTypeManagement = "application/vnd.contentful.management.v1+json"

	// ContentTypeOctetStream is the media type for binary uploads.
	ContentTypeOctetStream = "application/octet-stream"
)

// Headers specific to the management API.
const (
	// HeaderVersion carries the optimistic-locking version on writes.
	HeaderVersion = "X-Contentful-Version"

	// HeaderContentTypeID discriminates the content type on entry creation.
	HeaderContentTypeID = "X-Contentful-Content-Type"

	// HeaderSourceEnvironment selects the source when cloning environments.
	HeaderSourceEnvironment = "X-Contentful-Source-Environment"

	// HeaderRateLimitReset advertises the remaining seconds of a rate
	// limit window on 429 responses.
	HeaderRateLimitReset = "X-Contentful-RateLimit-Second-Remaining"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Rate limiting and retries.
const (
	// DefaultMaxRateLimitWait is the longest advertised rate-limit wait
	// the client will sleep for.
	DefaultMaxRateLimitWait = 60 * time.Second

	// DefaultRetryWaitMin is the minimum backoff between transport
	// retries when they are enabled.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between transport
	// retries when they are enabled.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 100
)
