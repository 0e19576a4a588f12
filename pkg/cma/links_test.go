package cma

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequester serves canned bodies keyed by path and records requests.
type fakeRequester struct {
	bodies  map[string][]byte
	queries map[string]url.Values
	calls   []string
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{
		bodies:  make(map[string][]byte),
		queries: make(map[string]url.Values),
	}
}

func (f *fakeRequester) GetResource(_ context.Context, _ string, path string, query url.Values) ([]byte, error) {
	f.calls = append(f.calls, path)
	f.queries[path] = query

	body, ok := f.bodies[path]
	if !ok {
		return nil, fmt.Errorf("no response for %s", path)
	}

	return body, nil
}

func scope() map[string]string {
	return map[string]string{"space": "space-id", "environment": "master"}
}

func TestResolver_Resolve(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/entries/entry-id"] = []byte(
		`{"sys": {"id": "entry-id", "type": "Entry"}, "fields": {"title": {"en-US": "Hello"}}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	link := NewLink(KindEntry, "entry-id")

	resource, err := resolver.Resolve(context.Background(), link, scope())
	require.NoError(t, err)

	entry, ok := resource.(*Entry)
	require.True(t, ok)
	assert.Equal(t, "entry-id", entry.Sys.ID)

	// The link itself is untouched by resolution.
	assert.Equal(t, TypeLink, link.Sys.Type)
	assert.Equal(t, "entry-id", link.Sys.ID)
}

func TestResolver_ResolveTwiceYieldsIndependentObjects(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/entries/entry-id"] = []byte(
		`{"sys": {"id": "entry-id", "type": "Entry"}, "fields": {"title": {"en-US": "Hello"}}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	link := NewLink(KindEntry, "entry-id")

	first, err := resolver.Resolve(context.Background(), link, scope())
	require.NoError(t, err)

	second, err := resolver.Resolve(context.Background(), link, scope())
	require.NoError(t, err)

	require.NotSame(t, first, second)

	first.(*Entry).SetField("title", "en-US", "Mutated")
	title, _ := second.(*Entry).GetField("title", "en-US")
	assert.Equal(t, "Hello", title)
}

func TestResolver_NilOrEmptyLink(t *testing.T) {
	resolver := NewResolver(newFakeRequester(), DefaultEndpoints())

	_, err := resolver.Resolve(context.Background(), nil, scope())
	assert.ErrorIs(t, err, ErrNilLink)

	_, err = resolver.Resolve(context.Background(), &Link{}, scope())
	assert.ErrorIs(t, err, ErrNilLink)
}

func TestResolver_UnknownLinkType(t *testing.T) {
	resolver := NewResolver(newFakeRequester(), DefaultEndpoints())

	_, err := resolver.Resolve(context.Background(), NewLink("Mystery", "x"), scope())
	assert.ErrorIs(t, err, ErrUnknownResourceKind)
}

func TestResolver_LocaleTravelsAsQueryParam(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/entries/entry-id"] = []byte(
		`{"sys": {"id": "entry-id", "type": "Entry"}, "fields": {}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	params := scope()
	params["locale"] = "de-DE"

	_, err := resolver.Resolve(context.Background(), NewLink(KindEntry, "entry-id"), params)
	require.NoError(t, err)

	query := requester.queries["/spaces/space-id/environments/master/entries/entry-id"]
	assert.Equal(t, "de-DE", query.Get("locale"))
}

func TestResolver_LinkEmbeddedScopeWins(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/other-space/environments/staging/entries/entry-id"] = []byte(
		`{"sys": {"id": "entry-id", "type": "Entry"}, "fields": {}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	link := NewLink(KindEntry, "entry-id")
	link.Sys.Space = NewLink(KindSpace, "other-space")
	link.Sys.Environment = NewLink(KindEnvironment, "staging")

	_, err := resolver.Resolve(context.Background(), link, scope())
	require.NoError(t, err)
	assert.Equal(t, []string{"/spaces/other-space/environments/staging/entries/entry-id"}, requester.calls)
}

func TestResolver_ResolveCollectionSkipsFailures(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/entries/a"] = []byte(
		`{"sys": {"id": "a", "type": "Entry"}, "fields": {}}`)
	requester.bodies["/spaces/space-id/environments/master/entries/c"] = []byte(
		`{"sys": {"id": "c", "type": "Entry"}, "fields": {}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	links := []*Link{
		NewLink(KindEntry, "a"),
		NewLink(KindEntry, "b"), // no canned response, resolution fails
		NewLink(KindEntry, "c"),
	}

	resources, err := resolver.ResolveCollection(context.Background(), links, scope())

	var resolveErrs *ResolveErrors
	require.ErrorAs(t, err, &resolveErrs)
	assert.Len(t, resolveErrs.Errors, 1)

	require.Len(t, resources, 2)
	assert.Equal(t, "a", resources[0].GetSys().ID)
	assert.Equal(t, "c", resources[1].GetSys().ID)
}

func TestResolver_ResolveCollectionAllSucceed(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/entries/a"] = []byte(
		`{"sys": {"id": "a", "type": "Entry"}, "fields": {}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	resources, err := resolver.ResolveCollection(context.Background(), []*Link{NewLink(KindEntry, "a")}, scope())
	require.NoError(t, err)
	assert.Len(t, resources, 1)
}

func TestResolver_ResolveReference(t *testing.T) {
	requester := newFakeRequester()
	requester.bodies["/spaces/space-id/environments/master/assets/asset-id"] = []byte(
		`{"sys": {"id": "asset-id", "type": "Asset"}}`)

	resolver := NewResolver(requester, DefaultEndpoints())

	ref := Unresolved(NewLink(KindAsset, "asset-id"))
	assert.False(t, ref.IsResolved())

	resolved, err := resolver.ResolveReference(context.Background(), ref, scope())
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved())

	// The original reference value is unchanged.
	assert.False(t, ref.IsResolved())

	resource, ok := resolved.Resource()
	require.True(t, ok)
	assert.Equal(t, "asset-id", resource.GetSys().ID)

	// Resolving an already-resolved reference is a no-op.
	again, err := resolver.ResolveReference(context.Background(), resolved, scope())
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
	assert.Len(t, requester.calls, 1)
}
