package cma

import (
	"time"
)

// Resource kinds as they appear in sys.type and sys.linkType.
const (
	KindSpace           = "Space"
	KindEnvironment     = "Environment"
	KindContentType     = "ContentType"
	KindEntry           = "Entry"
	KindAsset           = "Asset"
	KindLocale          = "Locale"
	KindAPIKey          = "ApiKey"
	KindPreviewAPIKey   = "PreviewApiKey"
	KindWebhook         = "WebhookDefinition"
	KindRole            = "Role"
	KindTag             = "Tag"
	KindUpload          = "Upload"
	KindEditorInterface = "EditorInterface"
	KindSnapshot        = "Snapshot"
	KindOrganization    = "Organization"
	KindUser            = "User"

	// KindWebhookHealth is an endpoint-table key only; the health payload
	// reports sys.type Webhook on the wire.
	KindWebhookHealth = "WebhookHealth"

	// KindContentTypeSnapshot is an endpoint-table key only; both entry
	// and content-type snapshots report sys.type Snapshot on the wire.
	KindContentTypeSnapshot = "ContentTypeSnapshot"

	// TypeArray marks a paginated collection envelope.
	TypeArray = "Array"
	// TypeLink marks an unresolved reference.
	TypeLink = "Link"
	// TypeError marks an error envelope.
	TypeError = "Error"
)

// Sys holds the system properties present on every CMA resource.
//
// ID and Type are immutable; Type uniquely determines which concrete
// resource variant applies. Version is the optimistic-locking counter sent
// back on writes via the X-Contentful-Version header.
type Sys struct {
	ID               string     `json:"id,omitempty"               yaml:"id,omitempty"`
	Type             string     `json:"type,omitempty"             yaml:"type,omitempty"`
	LinkType         string     `json:"linkType,omitempty"         yaml:"linkType,omitempty"`
	Version          int        `json:"version,omitempty"          yaml:"version,omitempty"`
	Space            *Link      `json:"space,omitempty"            yaml:"space,omitempty"`
	Environment      *Link      `json:"environment,omitempty"      yaml:"environment,omitempty"`
	ContentType      *Link      `json:"contentType,omitempty"      yaml:"contentType,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"        yaml:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"        yaml:"updatedAt,omitempty"`
	CreatedBy        *Link      `json:"createdBy,omitempty"        yaml:"createdBy,omitempty"`
	UpdatedBy        *Link      `json:"updatedBy,omitempty"        yaml:"updatedBy,omitempty"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"      yaml:"publishedAt,omitempty"`
	FirstPublishedAt *time.Time `json:"firstPublishedAt,omitempty" yaml:"firstPublishedAt,omitempty"`
	ArchivedAt       *time.Time `json:"archivedAt,omitempty"       yaml:"archivedAt,omitempty"`
	PublishedVersion int        `json:"publishedVersion,omitempty" yaml:"publishedVersion,omitempty"`
	ArchivedVersion  int        `json:"archivedVersion,omitempty"  yaml:"archivedVersion,omitempty"`
	PublishedCounter int        `json:"publishedCounter,omitempty" yaml:"publishedCounter,omitempty"`
	Visibility       string     `json:"visibility,omitempty"       yaml:"visibility,omitempty"`
}

// Resource is implemented by every typed CMA resource.
type Resource interface {
	GetSys() *Sys
}

// LinkSys is the sys block of a link: always type "Link" plus the target
// kind and id, optionally scoped to a space or environment other than the
// caller's.
type LinkSys struct {
	Type        string `json:"type"                  yaml:"type"`
	LinkType    string `json:"linkType"              yaml:"linkType"`
	ID          string `json:"id"                    yaml:"id"`
	Space       *Link  `json:"space,omitempty"       yaml:"space,omitempty"`
	Environment *Link  `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// Link is a lightweight reference to another resource. It is a lookup key,
// not an owning reference: it serializes as-is and is only turned into a
// full resource through an explicit Resolver call.
type Link struct {
	Sys LinkSys `json:"sys" yaml:"sys"`
}

// NewLink builds a link to the resource of the given kind and id.
func NewLink(linkType, id string) *Link {
	return &Link{Sys: LinkSys{Type: TypeLink, LinkType: linkType, ID: id}}
}

// GetSys implements Resource so bare links inside collection items can pass
// through the builder unresolved.
func (l *Link) GetSys() *Sys {
	return &Sys{ID: l.Sys.ID, Type: l.Sys.Type, LinkType: l.Sys.LinkType}
}

// Collection is a single page of a paginated listing. Items holds at most
// Limit entries in server order; fetching further pages is driven by the
// caller re-issuing the query with an adjusted skip.
type Collection[T any] struct {
	Sys   *Sys `json:"sys,omitempty" yaml:"sys,omitempty"`
	Total int  `json:"total"         yaml:"total"`
	Skip  int  `json:"skip"          yaml:"skip"`
	Limit int  `json:"limit"         yaml:"limit"`
	Items []T  `json:"items"         yaml:"items"`
}

// GetSys implements Resource.
func (c *Collection[T]) GetSys() *Sys {
	return c.Sys
}

// Reference is a tagged variant over a relationship: either an unresolved
// link or a fully fetched resource. Resolution is an explicit operation
// producing a new Reference; it never happens as a property-access side
// effect.
type Reference struct {
	link     *Link
	resource Resource
}

// Unresolved wraps a link into a Reference.
func Unresolved(link *Link) Reference {
	return Reference{link: link}
}

// Resolved wraps a fetched resource into a Reference.
func Resolved(resource Resource) Reference {
	return Reference{resource: resource}
}

// IsResolved reports whether the reference carries a full resource.
func (r Reference) IsResolved() bool {
	return r.resource != nil
}

// Link returns the underlying link. For a resolved reference this is a link
// reconstructed from the resource's sys block.
func (r Reference) Link() *Link {
	if r.link != nil {
		return r.link
	}

	if r.resource != nil {
		sys := r.resource.GetSys()
		if sys != nil {
			return NewLink(sys.Type, sys.ID)
		}
	}

	return nil
}

// Resource returns the resolved resource, or false when unresolved.
func (r Reference) Resource() (Resource, bool) {
	return r.resource, r.resource != nil
}

// Metadata carries entry/asset tagging.
type Metadata struct {
	Tags []*Link `json:"tags" yaml:"tags"`
}
