package cma

import (
	"encoding/json"
	"fmt"
)

// Mapper converts a raw JSON fragment into a typed resource. When into is
// non-nil and of the mapper's type, the fragment is decoded into that
// object in place so references the caller already holds reflect the fresh
// server state.
type Mapper func(raw json.RawMessage, into Resource) (Resource, error)

// Builder turns raw JSON envelopes into typed resources. It inspects
// sys.type to decide between the single-resource and paginated-collection
// shapes and dispatches to the mapper registered for the type.
type Builder struct {
	mappers map[string]Mapper
}

// NewBuilder creates a builder with mappers registered for every supported
// resource kind.
func NewBuilder() *Builder {
	b := &Builder{mappers: make(map[string]Mapper)}

	b.Register(KindSpace, resourceMapper[Space]())
	b.Register(KindEnvironment, resourceMapper[Environment]())
	b.Register(KindContentType, resourceMapper[ContentType]())
	b.Register(KindEntry, resourceMapper[Entry]())
	b.Register(KindAsset, resourceMapper[Asset]())
	b.Register(KindLocale, resourceMapper[Locale]())
	b.Register(KindAPIKey, resourceMapper[APIKey]())
	b.Register(KindPreviewAPIKey, resourceMapper[PreviewAPIKey]())
	b.Register(KindWebhook, resourceMapper[Webhook]())
	b.Register(KindRole, resourceMapper[Role]())
	b.Register(KindTag, resourceMapper[Tag]())
	b.Register(KindUpload, resourceMapper[Upload]())
	b.Register(KindEditorInterface, resourceMapper[EditorInterface]())
	b.Register(KindSnapshot, resourceMapper[Snapshot]())
	b.Register(KindOrganization, resourceMapper[Organization]())
	b.Register(KindUser, resourceMapper[User]())
	b.Register(TypeLink, linkMapper)

	return b
}

// Register installs a mapper for a sys.type value, replacing any previous
// registration.
func (b *Builder) Register(sysType string, mapper Mapper) {
	b.mappers[sysType] = mapper
}

// sysPeek is the minimal envelope needed to pick a shape and mapper.
type sysPeek struct {
	Sys struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		LinkType string `json:"linkType"`
	} `json:"sys"`
}

// Build converts a raw body into a typed resource or, for sys.type
// "Array", a collection. An unknown sys.type is always an error; it is
// never silently defaulted since it signals a version mismatch between
// client and server. A missing sys.id fails loudly rather than producing a
// partially initialized object.
func (b *Builder) Build(raw []byte, into Resource) (Resource, error) {
	var peek sysPeek
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, fmt.Errorf("decoding resource envelope: %w", err)
	}

	if peek.Sys.Type == "" {
		return nil, fmt.Errorf("%w: missing sys.type", ErrMalformedSys)
	}

	if peek.Sys.Type == TypeArray {
		return b.BuildCollection(raw)
	}

	if peek.Sys.ID == "" {
		return nil, fmt.Errorf("%w: missing sys.id on %s", ErrMalformedSys, peek.Sys.Type)
	}

	mapper, ok := b.mappers[peek.Sys.Type]
	if !ok {
		return nil, &UnsupportedTypeError{Type: peek.Sys.Type}
	}

	resource, err := mapper(raw, into)
	if err != nil {
		return nil, fmt.Errorf("mapping %s %q: %w", peek.Sys.Type, peek.Sys.ID, err)
	}

	return resource, nil
}

// BuildCollection converts an Array envelope into a collection, building
// each item in order. Items that are bare links pass through unresolved.
func (b *Builder) BuildCollection(raw []byte) (*Collection[Resource], error) {
	var envelope struct {
		Sys   *Sys              `json:"sys"`
		Total int               `json:"total"`
		Skip  int               `json:"skip"`
		Limit int               `json:"limit"`
		Items []json.RawMessage `json:"items"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding collection envelope: %w", err)
	}

	collection := &Collection[Resource]{
		Sys:   envelope.Sys,
		Total: envelope.Total,
		Skip:  envelope.Skip,
		Limit: envelope.Limit,
		Items: make([]Resource, 0, len(envelope.Items)),
	}

	for i, item := range envelope.Items {
		resource, err := b.Build(item, nil)
		if err != nil {
			return nil, fmt.Errorf("building collection item %d: %w", i, err)
		}

		collection.Items = append(collection.Items, resource)
	}

	return collection, nil
}

// resourceMapper returns a mapper decoding into *T. A matching non-nil
// hint is zeroed and refilled in place; otherwise a fresh object is
// allocated.
func resourceMapper[T any]() Mapper {
	return func(raw json.RawMessage, into Resource) (Resource, error) {
		target, ok := any(into).(*T)
		if !ok || target == nil {
			target = new(T)
		} else {
			var zero T
			*target = zero
		}

		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}

		resource, ok := any(target).(Resource)
		if !ok {
			return nil, fmt.Errorf("%T does not implement Resource", target)
		}

		return resource, nil
	}
}

// linkMapper passes bare links through untouched.
func linkMapper(raw json.RawMessage, into Resource) (Resource, error) {
	link, ok := into.(*Link)
	if !ok || link == nil {
		link = &Link{}
	}

	if err := json.Unmarshal(raw, link); err != nil {
		return nil, err
	}

	return link, nil
}
