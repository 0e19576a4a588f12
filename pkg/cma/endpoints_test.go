package cma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointTable_Expand(t *testing.T) {
	endpoints := DefaultEndpoints()

	tests := []struct {
		name       string
		kind       string
		params     map[string]string
		resourceID string
		want       string
	}{
		{
			name: "entry collection",
			kind: KindEntry,
			params: map[string]string{
				"space":       "space-id",
				"environment": "master",
			},
			want: "/spaces/space-id/environments/master/entries",
		},
		{
			name: "single entry",
			kind: KindEntry,
			params: map[string]string{
				"space":       "space-id",
				"environment": "master",
			},
			resourceID: "entry-id",
			want:       "/spaces/space-id/environments/master/entries/entry-id",
		},
		{
			name: "spaces need no params",
			kind: KindSpace,
			want: "/spaces",
		},
		{
			name: "editor interface is a singleton per content type",
			kind: KindEditorInterface,
			params: map[string]string{
				"space":        "space-id",
				"environment":  "master",
				"content_type": "blogPost",
			},
			want: "/spaces/space-id/environments/master/content_types/blogPost/editor_interface",
		},
		{
			name: "webhook health lives under /webhooks",
			kind: KindWebhookHealth,
			params: map[string]string{
				"space":   "space-id",
				"webhook": "webhook-id",
			},
			want: "/spaces/space-id/webhooks/webhook-id/health",
		},
		{
			name: "snapshots nest under their entry",
			kind: KindSnapshot,
			params: map[string]string{
				"space":       "space-id",
				"environment": "master",
				"entry":       "entry-id",
			},
			resourceID: "snap-1",
			want:       "/spaces/space-id/environments/master/entries/entry-id/snapshots/snap-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := endpoints.Expand(tt.kind, tt.params, tt.resourceID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestEndpointTable_ExpandMissingParam(t *testing.T) {
	endpoints := DefaultEndpoints()

	_, err := endpoints.Expand(KindEntry, map[string]string{"space": "space-id"}, "")
	require.ErrorIs(t, err, ErrMissingPathParam)
	assert.Contains(t, err.Error(), "environment")

	_, err = endpoints.Expand(KindEntry, map[string]string{
		"space":       "space-id",
		"environment": "",
	}, "")
	assert.ErrorIs(t, err, ErrMissingPathParam)
}

func TestEndpointTable_UnknownKind(t *testing.T) {
	endpoints := DefaultEndpoints()

	_, err := endpoints.Expand("ScheduledAction", nil, "")
	assert.ErrorIs(t, err, ErrUnknownResourceKind)
}

func TestEndpointTable_ExpandEscapesResourceID(t *testing.T) {
	endpoints := DefaultEndpoints()

	path, err := endpoints.Expand(KindSpace, nil, "weird id/..")
	require.NoError(t, err)
	assert.Equal(t, "/spaces/weird%20id%2F..", path)
}

func TestEndpointTable_UploadHost(t *testing.T) {
	endpoints := DefaultEndpoints()

	endpoint, err := endpoints.Lookup(KindUpload)
	require.NoError(t, err)
	assert.Equal(t, HostUpload, endpoint.Host)

	endpoint, err = endpoints.Lookup(KindEntry)
	require.NoError(t, err)
	assert.Equal(t, HostManagement, endpoint.Host)
}
