package cma

import (
	"context"
	"net/http"
	"time"
)

// Logger is the structured logging interface accepted by the client. Any
// logger that can emit leveled messages with field maps can be plugged in.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config carries the caller-supplied configuration for building a client.
//
// AccessToken is the only required field: the CMA authenticates every call
// with a bearer token. Retries for server errors are off by default and
// opt-in through RetryMax; the rate-limit path has its own budget and
// ceiling, see MaxRateLimitRetries and MaxRateLimitWait.
type Config struct {
	// AccessToken is the CMA bearer token. Required.
	AccessToken string

	// Host overrides the management API host
	// (default "https://api.contentful.com").
	Host string
	// UploadHost overrides the binary upload host
	// (default "https://upload.contentful.com").
	UploadHost string

	// SpaceID scopes space- and environment-level resource clients.
	SpaceID string
	// Environment selects the environment; defaults to "master".
	Environment string

	// HTTPClient injects the HTTP transport (connection pooling, TLS,
	// proxies). When nil a default transport is used.
	HTTPClient *http.Client
	// Logger receives debug request/response logs and resolver warnings.
	Logger Logger
	// Debug enables request/response logging through Logger.
	Debug bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// MaxRateLimitRetries is the per-request retry budget for HTTP 429
	// responses. The default of 0 means rate-limit errors surface
	// immediately.
	MaxRateLimitRetries int
	// MaxRateLimitWait is the longest server-advertised wait the client
	// will sleep for before retrying a rate-limited request; longer waits
	// fail with RateWaitTooLongError. Defaults to 60 seconds.
	MaxRateLimitWait time.Duration

	// RequestsPerSecond enables a client-side throttle ahead of the
	// server's rate limiter. 0 disables it.
	RequestsPerSecond int
	// ExtraHeaders are added to every request; headers the request sets
	// itself win.
	ExtraHeaders map[string]string

	// RetryMax enables transport-level retries for connection failures and
	// 5xx responses. 0 (the default) disables them: apart from the
	// rate-limit path, failures surface immediately.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration
}

// SpacesClient manages spaces.
type SpacesClient interface {
	CollectionClient[Space]

	Create(ctx context.Context, request *SpaceCreateRequest) (*Space, error)
	Get(ctx context.Context, spaceID string) (*Space, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Space], error)
	Update(ctx context.Context, space *Space) (*Space, error)
	Delete(ctx context.Context, spaceID string) error
}

// EnvironmentsClient manages environments of the configured space.
type EnvironmentsClient interface {
	CollectionClient[Environment]

	Create(ctx context.Context, environmentID string, request *EnvironmentCreateRequest) (*Environment, error)
	CreateFromSource(ctx context.Context, environmentID, sourceEnvironmentID string, request *EnvironmentCreateRequest) (*Environment, error)
	Get(ctx context.Context, environmentID string) (*Environment, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Environment], error)
	Delete(ctx context.Context, environmentID string) error
}

// EntriesClient manages entries of the configured environment.
type EntriesClient interface {
	CollectionClient[Entry]

	Create(ctx context.Context, contentTypeID string, request *EntryCreateRequest) (*Entry, error)
	CreateWithID(ctx context.Context, entryID, contentTypeID string, request *EntryCreateRequest) (*Entry, error)
	Get(ctx context.Context, entryID string) (*Entry, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Entry], error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	Delete(ctx context.Context, entryID string, version int) error
	Publish(ctx context.Context, entry *Entry) (*Entry, error)
	Unpublish(ctx context.Context, entry *Entry) (*Entry, error)
	Archive(ctx context.Context, entry *Entry) (*Entry, error)
	Unarchive(ctx context.Context, entry *Entry) (*Entry, error)
}

// AssetsClient manages assets of the configured environment.
type AssetsClient interface {
	CollectionClient[Asset]

	Create(ctx context.Context, request *AssetCreateRequest) (*Asset, error)
	CreateWithID(ctx context.Context, assetID string, request *AssetCreateRequest) (*Asset, error)
	Get(ctx context.Context, assetID string) (*Asset, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Asset], error)
	Update(ctx context.Context, asset *Asset) (*Asset, error)
	Delete(ctx context.Context, assetID string, version int) error
	Process(ctx context.Context, asset *Asset, locale string) error
	Publish(ctx context.Context, asset *Asset) (*Asset, error)
	Unpublish(ctx context.Context, asset *Asset) (*Asset, error)
	Archive(ctx context.Context, asset *Asset) (*Asset, error)
	Unarchive(ctx context.Context, asset *Asset) (*Asset, error)
}

// ContentTypesClient manages content types of the configured environment.
type ContentTypesClient interface {
	CollectionClient[ContentType]

	Create(ctx context.Context, request *ContentTypeCreateRequest) (*ContentType, error)
	CreateWithID(ctx context.Context, contentTypeID string, request *ContentTypeCreateRequest) (*ContentType, error)
	Get(ctx context.Context, contentTypeID string) (*ContentType, error)
	List(ctx context.Context, params *QueryParams) (*Collection[ContentType], error)
	Update(ctx context.Context, contentType *ContentType) (*ContentType, error)
	Delete(ctx context.Context, contentTypeID string) error
	Publish(ctx context.Context, contentType *ContentType) (*ContentType, error)
	Unpublish(ctx context.Context, contentType *ContentType) (*ContentType, error)
}

// EditorInterfacesClient reads and updates content type editor
// configurations.
type EditorInterfacesClient interface {
	Get(ctx context.Context, contentTypeID string) (*EditorInterface, error)
	Update(ctx context.Context, contentTypeID string, editorInterface *EditorInterface) (*EditorInterface, error)
}

// LocalesClient manages locales of the configured environment.
type LocalesClient interface {
	CollectionClient[Locale]

	Create(ctx context.Context, request *LocaleCreateRequest) (*Locale, error)
	Get(ctx context.Context, localeID string) (*Locale, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Locale], error)
	Update(ctx context.Context, locale *Locale) (*Locale, error)
	Delete(ctx context.Context, localeID string) error
}

// APIKeysClient manages delivery API keys of the configured space.
type APIKeysClient interface {
	CollectionClient[APIKey]

	Create(ctx context.Context, request *APIKeyCreateRequest) (*APIKey, error)
	Get(ctx context.Context, keyID string) (*APIKey, error)
	List(ctx context.Context, params *QueryParams) (*Collection[APIKey], error)
	Update(ctx context.Context, key *APIKey) (*APIKey, error)
	Delete(ctx context.Context, keyID string) error
	GetPreviewKey(ctx context.Context, previewKeyID string) (*PreviewAPIKey, error)
	ListPreviewKeys(ctx context.Context, params *QueryParams) (*Collection[PreviewAPIKey], error)
}

// WebhooksClient manages webhook definitions of the configured space.
type WebhooksClient interface {
	CollectionClient[Webhook]

	Create(ctx context.Context, request *WebhookCreateRequest) (*Webhook, error)
	Get(ctx context.Context, webhookID string) (*Webhook, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Webhook], error)
	Update(ctx context.Context, webhook *Webhook, request *WebhookCreateRequest) (*Webhook, error)
	Delete(ctx context.Context, webhookID string) error
	Health(ctx context.Context, webhookID string) (*WebhookHealth, error)
}

// RolesClient manages roles of the configured space.
type RolesClient interface {
	CollectionClient[Role]

	Create(ctx context.Context, request *RoleCreateRequest) (*Role, error)
	Get(ctx context.Context, roleID string) (*Role, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Role], error)
	Update(ctx context.Context, role *Role) (*Role, error)
	Delete(ctx context.Context, roleID string) error
}

// TagsClient manages tags of the configured environment.
type TagsClient interface {
	CollectionClient[Tag]

	CreateWithID(ctx context.Context, tagID string, request *TagCreateRequest) (*Tag, error)
	Get(ctx context.Context, tagID string) (*Tag, error)
	List(ctx context.Context, params *QueryParams) (*Collection[Tag], error)
	Update(ctx context.Context, tag *Tag) (*Tag, error)
	Delete(ctx context.Context, tagID string, version int) error
}

// UploadsClient manages binary uploads on the upload host.
type UploadsClient interface {
	Create(ctx context.Context, data []byte) (*Upload, error)
	Get(ctx context.Context, uploadID string) (*Upload, error)
	Delete(ctx context.Context, uploadID string) error
}

// SnapshotsClient reads entry snapshots; snapshots are immutable.
type SnapshotsClient interface {
	ListForEntry(ctx context.Context, entryID string, params *QueryParams) (*Collection[Snapshot], error)
	GetForEntry(ctx context.Context, entryID, snapshotID string) (*Snapshot, error)
	ListForContentType(ctx context.Context, contentTypeID string, params *QueryParams) (*Collection[Snapshot], error)
	GetForContentType(ctx context.Context, contentTypeID, snapshotID string) (*Snapshot, error)
}

// OrganizationsClient reads organizations.
type OrganizationsClient interface {
	CollectionClient[Organization]

	List(ctx context.Context, params *QueryParams) (*Collection[Organization], error)
}

// UsersClient reads the authenticated user.
type UsersClient interface {
	Me(ctx context.Context) (*User, error)
}

// ContentClients groups the clients operating on environment content.
type ContentClients interface {
	Entries() EntriesClient
	Assets() AssetsClient
	ContentTypes() ContentTypesClient
	EditorInterfaces() EditorInterfacesClient
	Snapshots() SnapshotsClient
}

// SpaceAdminClients groups the clients administering a space.
type SpaceAdminClients interface {
	Spaces() SpacesClient
	Environments() EnvironmentsClient
	Locales() LocalesClient
	Tags() TagsClient
}

// AccessClients groups the clients around access management.
type AccessClients interface {
	APIKeys() APIKeysClient
	Roles() RolesClient
	Organizations() OrganizationsClient
	Users() UsersClient
}

// IntegrationClients groups webhook and upload clients.
type IntegrationClients interface {
	Webhooks() WebhooksClient
	Uploads() UploadsClient
}

// Client is the full CMA client surface.
type Client interface {
	ContentClients
	SpaceAdminClients
	AccessClients
	IntegrationClients

	// Resolver returns the link resolver bound to this client.
	Resolver() *Resolver

	// Raw issues an arbitrary request against the management host and
	// builds whatever typed resource or collection comes back; a response
	// without a body yields nil.
	Raw(ctx context.Context, method, path string, body interface{}) (Resource, error)
}
