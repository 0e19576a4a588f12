package cma

import (
	"encoding/json"
	"fmt"
)

// Space represents a Contentful space.
type Space struct {
	Sys  *Sys   `json:"sys,omitempty" yaml:"sys,omitempty"`
	Name string `json:"name"          yaml:"name"`
}

// GetSys implements Resource.
func (s *Space) GetSys() *Sys { return s.Sys }

// SpaceCreateRequest is the body for creating a space.
type SpaceCreateRequest struct {
	Name          string `json:"name"                    yaml:"name"`
	DefaultLocale string `json:"defaultLocale,omitempty" yaml:"defaultLocale,omitempty"`
}

// Environment represents an environment within a space.
type Environment struct {
	Sys  *Sys   `json:"sys,omitempty" yaml:"sys,omitempty"`
	Name string `json:"name"          yaml:"name"`
}

// GetSys implements Resource.
func (e *Environment) GetSys() *Sys { return e.Sys }

// EnvironmentCreateRequest is the body for creating an environment.
type EnvironmentCreateRequest struct {
	Name string `json:"name" yaml:"name"`
}

// Fields maps field id -> locale -> value, the wire shape of entry fields.
type Fields map[string]map[string]interface{}

// Entry represents an entry of some content type. Field access goes through
// the explicit GetField/SetField pair; the content type that shapes the
// fields is referenced from sys.contentType.
type Entry struct {
	Sys      *Sys      `json:"sys,omitempty"      yaml:"sys,omitempty"`
	Fields   Fields    `json:"fields"             yaml:"fields"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetSys implements Resource.
func (e *Entry) GetSys() *Sys { return e.Sys }

// GetField returns the value of a field in a locale, with ok reporting
// whether it was present.
func (e *Entry) GetField(name, locale string) (interface{}, bool) {
	locales, ok := e.Fields[name]
	if !ok {
		return nil, false
	}

	value, ok := locales[locale]

	return value, ok
}

// SetField sets a localized field value. The name and locale are validated
// before anything is stored, so no partial state is ever transmitted.
func (e *Entry) SetField(name, locale string, value interface{}) error {
	if name == "" {
		return &ValidationError{Field: "field", Reason: "name must not be empty"}
	}

	if locale == "" {
		return &ValidationError{Field: name, Reason: "locale must not be empty"}
	}

	if e.Fields == nil {
		e.Fields = Fields{}
	}

	if e.Fields[name] == nil {
		e.Fields[name] = map[string]interface{}{}
	}

	e.Fields[name][locale] = value

	return nil
}

// EntryCreateRequest is the body for creating or updating an entry: the
// fields only, never sys.
type EntryCreateRequest struct {
	Fields   Fields    `json:"fields"             yaml:"fields"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Body returns the request-body encoding of the entry, dropping sys and
// keeping exactly the fields the caller set.
func (e *Entry) Body() *EntryCreateRequest {
	return &EntryCreateRequest{Fields: e.Fields, Metadata: e.Metadata}
}

// FileDetails carries size and, for images, dimension information.
type FileDetails struct {
	Size  int64         `json:"size,omitempty"  yaml:"size,omitempty"`
	Image *ImageDetails `json:"image,omitempty" yaml:"image,omitempty"`
}

// ImageDetails carries image dimensions in pixels.
type ImageDetails struct {
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// File describes one localized asset file. Before processing it carries an
// upload URL or an Upload link; afterwards the CDN URL and details.
type File struct {
	FileName    string       `json:"fileName,omitempty"    yaml:"fileName,omitempty"`
	ContentType string       `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	URL         string       `json:"url,omitempty"         yaml:"url,omitempty"`
	UploadURL   string       `json:"upload,omitempty"      yaml:"upload,omitempty"`
	UploadFrom  *Link        `json:"uploadFrom,omitempty"  yaml:"uploadFrom,omitempty"`
	Details     *FileDetails `json:"details,omitempty"     yaml:"details,omitempty"`
}

// AssetFields holds the localized fields of an asset.
type AssetFields struct {
	Title       map[string]string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description map[string]string `json:"description,omitempty" yaml:"description,omitempty"`
	File        map[string]*File  `json:"file,omitempty"        yaml:"file,omitempty"`
}

// Asset represents a media asset.
type Asset struct {
	Sys      *Sys         `json:"sys,omitempty"      yaml:"sys,omitempty"`
	Fields   *AssetFields `json:"fields,omitempty"   yaml:"fields,omitempty"`
	Metadata *Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetSys implements Resource.
func (a *Asset) GetSys() *Sys { return a.Sys }

// AssetCreateRequest is the body for creating or updating an asset.
type AssetCreateRequest struct {
	Fields *AssetFields `json:"fields" yaml:"fields"`
}

// FieldItems describes the item type of an Array field.
type FieldItems struct {
	Type        string       `json:"type,omitempty"        yaml:"type,omitempty"`
	LinkType    string       `json:"linkType,omitempty"    yaml:"linkType,omitempty"`
	Validations []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Validation is one validation rule on a content type field, keyed by rule
// name (e.g. "size", "in", "linkContentType").
type Validation map[string]interface{}

// ContentTypeField describes one field of a content type.
type ContentTypeField struct {
	ID          string       `json:"id"                    yaml:"id"`
	Name        string       `json:"name"                  yaml:"name"`
	Type        string       `json:"type"                  yaml:"type"`
	LinkType    string       `json:"linkType,omitempty"    yaml:"linkType,omitempty"`
	Items       *FieldItems  `json:"items,omitempty"       yaml:"items,omitempty"`
	Required    bool         `json:"required,omitempty"    yaml:"required,omitempty"`
	Localized   bool         `json:"localized,omitempty"   yaml:"localized,omitempty"`
	Disabled    bool         `json:"disabled,omitempty"    yaml:"disabled,omitempty"`
	Omitted     bool         `json:"omitted,omitempty"     yaml:"omitted,omitempty"`
	Validations []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// ContentType represents a content type definition.
type ContentType struct {
	Sys          *Sys                `json:"sys,omitempty"          yaml:"sys,omitempty"`
	Name         string              `json:"name"                   yaml:"name"`
	Description  string              `json:"description,omitempty"  yaml:"description,omitempty"`
	DisplayField string              `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Fields       []*ContentTypeField `json:"fields"                 yaml:"fields"`
}

// GetSys implements Resource.
func (c *ContentType) GetSys() *Sys { return c.Sys }

// ContentTypeCreateRequest is the body for creating or updating a content
// type.
type ContentTypeCreateRequest struct {
	Name         string              `json:"name"                   yaml:"name"`
	Description  string              `json:"description,omitempty"  yaml:"description,omitempty"`
	DisplayField string              `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Fields       []*ContentTypeField `json:"fields"                 yaml:"fields"`
}

// Locale represents a locale of an environment.
type Locale struct {
	Sys               *Sys    `json:"sys,omitempty"        yaml:"sys,omitempty"`
	Name              string  `json:"name"                 yaml:"name"`
	Code              string  `json:"code"                 yaml:"code"`
	FallbackCode      *string `json:"fallbackCode"         yaml:"fallbackCode"`
	Default           bool    `json:"default,omitempty"    yaml:"default,omitempty"`
	Optional          bool    `json:"optional,omitempty"   yaml:"optional,omitempty"`
	ContentDelivery   bool    `json:"contentDeliveryApi"   yaml:"contentDeliveryApi"`
	ContentManagement bool    `json:"contentManagementApi" yaml:"contentManagementApi"`
}

// GetSys implements Resource.
func (l *Locale) GetSys() *Sys { return l.Sys }

// LocaleCreateRequest is the body for creating or updating a locale.
type LocaleCreateRequest struct {
	Name              string  `json:"name"                   yaml:"name"`
	Code              string  `json:"code"                   yaml:"code"`
	FallbackCode      *string `json:"fallbackCode,omitempty" yaml:"fallbackCode,omitempty"`
	Optional          bool    `json:"optional,omitempty"     yaml:"optional,omitempty"`
	ContentDelivery   bool    `json:"contentDeliveryApi"     yaml:"contentDeliveryApi"`
	ContentManagement bool    `json:"contentManagementApi"   yaml:"contentManagementApi"`
}

// Validate checks the request before it is transmitted.
func (r *LocaleCreateRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if r.Code == "" {
		return &ValidationError{Field: "code", Reason: "must not be empty"}
	}

	return nil
}

// APIKey represents a delivery API key of a space.
type APIKey struct {
	Sys           *Sys    `json:"sys,omitempty"           yaml:"sys,omitempty"`
	Name          string  `json:"name"                    yaml:"name"`
	Description   string  `json:"description,omitempty"   yaml:"description,omitempty"`
	AccessToken   string  `json:"accessToken,omitempty"   yaml:"accessToken,omitempty"`
	Environments  []*Link `json:"environments,omitempty"  yaml:"environments,omitempty"`
	PreviewAPIKey *Link   `json:"preview_api_key,omitempty" yaml:"preview_api_key,omitempty"`
}

// GetSys implements Resource.
func (k *APIKey) GetSys() *Sys { return k.Sys }

// PreviewAPIKey is the preview counterpart of an APIKey, discriminated by
// sys.type.
type PreviewAPIKey struct {
	Sys         *Sys   `json:"sys,omitempty"         yaml:"sys,omitempty"`
	AccessToken string `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
}

// GetSys implements Resource.
func (k *PreviewAPIKey) GetSys() *Sys { return k.Sys }

// APIKeyCreateRequest is the body for creating or updating an API key.
type APIKeyCreateRequest struct {
	Name         string  `json:"name"                   yaml:"name"`
	Description  string  `json:"description,omitempty"  yaml:"description,omitempty"`
	Environments []*Link `json:"environments,omitempty" yaml:"environments,omitempty"`
}

// WebhookCallStats summarizes recent webhook delivery outcomes.
type WebhookCallStats struct {
	Total   int `json:"total"   yaml:"total"`
	Healthy int `json:"healthy" yaml:"healthy"`
}

// WebhookHealth is the call overview of one webhook definition.
type WebhookHealth struct {
	Sys   *Sys             `json:"sys,omitempty" yaml:"sys,omitempty"`
	Calls WebhookCallStats `json:"calls"         yaml:"calls"`
}

// GetSys implements Resource.
func (h *WebhookHealth) GetSys() *Sys { return h.Sys }

// WebhookHeader is one custom header sent with webhook calls.
type WebhookHeader struct {
	Key    string `json:"key"              yaml:"key"`
	Value  string `json:"value,omitempty"  yaml:"value,omitempty"`
	Secret bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
}

// Webhook represents a webhook definition.
type Webhook struct {
	Sys               *Sys             `json:"sys,omitempty"               yaml:"sys,omitempty"`
	Name              string           `json:"name"                        yaml:"name"`
	URL               string           `json:"url"                         yaml:"url"`
	Topics            []string         `json:"topics"                      yaml:"topics"`
	Headers           []*WebhookHeader `json:"headers,omitempty"           yaml:"headers,omitempty"`
	HTTPBasicUsername string           `json:"httpBasicUsername,omitempty" yaml:"httpBasicUsername,omitempty"`
	Active            bool             `json:"active"                      yaml:"active"`
}

// GetSys implements Resource.
func (w *Webhook) GetSys() *Sys { return w.Sys }

// WebhookCreateRequest is the body for creating or updating a webhook.
type WebhookCreateRequest struct {
	Name              string           `json:"name"                        yaml:"name"`
	URL               string           `json:"url"                         yaml:"url"`
	Topics            []string         `json:"topics"                      yaml:"topics"`
	Headers           []*WebhookHeader `json:"headers,omitempty"           yaml:"headers,omitempty"`
	HTTPBasicUsername string           `json:"httpBasicUsername,omitempty" yaml:"httpBasicUsername,omitempty"`
	HTTPBasicPassword string           `json:"httpBasicPassword,omitempty" yaml:"httpBasicPassword,omitempty"`
	Active            bool             `json:"active"                      yaml:"active"`
}

// Validate checks topic syntax ("Type.Action", where either segment may be
// the "*" wildcard) before transmission.
func (r *WebhookCreateRequest) Validate() error {
	if r.URL == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}

	if len(r.Topics) == 0 {
		return &ValidationError{Field: "topics", Reason: "at least one topic is required"}
	}

	for _, topic := range r.Topics {
		if !validTopic(topic) {
			return &ValidationError{Field: "topics", Reason: fmt.Sprintf("invalid topic %q", topic)}
		}
	}

	return nil
}

func validTopic(topic string) bool {
	if topic == "*.*" {
		return true
	}

	dot := -1

	for i, r := range topic {
		if r == '.' {
			if dot >= 0 {
				return false
			}

			dot = i
		}
	}

	return dot > 0 && dot < len(topic)-1
}

// RolePolicy is one allow/deny rule of a role.
type RolePolicy struct {
	Effect     string      `json:"effect"               yaml:"effect"`
	Actions    interface{} `json:"actions"              yaml:"actions"`
	Constraint interface{} `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// Role represents a space role.
type Role struct {
	Sys         *Sys                   `json:"sys,omitempty"         yaml:"sys,omitempty"`
	Name        string                 `json:"name"                  yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Policies    []*RolePolicy          `json:"policies"              yaml:"policies"`
	Permissions map[string]interface{} `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// GetSys implements Resource.
func (r *Role) GetSys() *Sys { return r.Sys }

// RoleCreateRequest is the body for creating or updating a role.
type RoleCreateRequest struct {
	Name        string                 `json:"name"                  yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Policies    []*RolePolicy          `json:"policies"              yaml:"policies"`
	Permissions map[string]interface{} `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// Tag visibility values.
const (
	TagVisibilityPublic  = "public"
	TagVisibilityPrivate = "private"
)

// Tag represents an environment tag. Visibility lives in sys.
type Tag struct {
	Sys  *Sys   `json:"sys,omitempty" yaml:"sys,omitempty"`
	Name string `json:"name"          yaml:"name"`
}

// GetSys implements Resource.
func (t *Tag) GetSys() *Sys { return t.Sys }

// TagCreateRequest is the body for creating a tag. Visibility is validated
// against the known enumeration before any network call.
type TagCreateRequest struct {
	Name       string
	Visibility string
}

// Validate checks the visibility enumeration.
func (r *TagCreateRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	switch r.Visibility {
	case "", TagVisibilityPublic, TagVisibilityPrivate:
		return nil
	default:
		return &ValidationError{Field: "visibility", Reason: fmt.Sprintf("must be %q or %q, got %q", TagVisibilityPublic, TagVisibilityPrivate, r.Visibility)}
	}
}

// Upload represents a binary upload on the upload host. It has no fields
// beyond sys; its id is referenced from asset files via uploadFrom links.
type Upload struct {
	Sys *Sys `json:"sys,omitempty" yaml:"sys,omitempty"`
}

// GetSys implements Resource.
func (u *Upload) GetSys() *Sys { return u.Sys }

// EditorInterfaceControl binds one content type field to an editor widget.
type EditorInterfaceControl struct {
	FieldID         string                 `json:"fieldId"                   yaml:"fieldId"`
	WidgetID        string                 `json:"widgetId,omitempty"        yaml:"widgetId,omitempty"`
	WidgetNamespace string                 `json:"widgetNamespace,omitempty" yaml:"widgetNamespace,omitempty"`
	Settings        map[string]interface{} `json:"settings,omitempty"        yaml:"settings,omitempty"`
}

// EditorInterface represents the editor configuration of a content type.
type EditorInterface struct {
	Sys      *Sys                      `json:"sys,omitempty" yaml:"sys,omitempty"`
	Controls []*EditorInterfaceControl `json:"controls"      yaml:"controls"`
}

// GetSys implements Resource.
func (e *EditorInterface) GetSys() *Sys { return e.Sys }

// Snapshot is a point-in-time copy of an entry or content type, read-only.
type Snapshot struct {
	Sys      *Sys            `json:"sys,omitempty" yaml:"sys,omitempty"`
	Snapshot json.RawMessage `json:"snapshot"      yaml:"snapshot"`
}

// GetSys implements Resource.
func (s *Snapshot) GetSys() *Sys { return s.Sys }

// Organization represents an organization, read-only on this API.
type Organization struct {
	Sys  *Sys   `json:"sys,omitempty" yaml:"sys,omitempty"`
	Name string `json:"name"          yaml:"name"`
}

// GetSys implements Resource.
func (o *Organization) GetSys() *Sys { return o.Sys }

// User represents a user, read-only on this API.
type User struct {
	Sys       *Sys   `json:"sys,omitempty"       yaml:"sys,omitempty"`
	FirstName string `json:"firstName"           yaml:"firstName"`
	LastName  string `json:"lastName"            yaml:"lastName"`
	Email     string `json:"email"               yaml:"email"`
	AvatarURL string `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
}

// GetSys implements Resource.
func (u *User) GetSys() *Sys { return u.Sys }
