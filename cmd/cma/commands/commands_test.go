package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

func TestNewEntriesCommand(t *testing.T) {
	cmd := NewEntriesCommand()
	assert.Equal(t, "entries", cmd.Use)
	assert.Equal(t, []string{"entry"}, cmd.Aliases)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "publish")
	assert.Contains(t, commandNames, "unpublish")
	assert.Contains(t, commandNames, "archive")
	assert.Contains(t, commandNames, "unarchive")
	assert.Contains(t, commandNames, "delete")
}

func TestEntriesCreateCommandFlags(t *testing.T) {
	cmd := newEntriesCreateCommand()
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("content-type"))
	assert.NotNil(t, cmd.Flags().Lookup("from-file"))
	assert.NotNil(t, cmd.Flags().Lookup("publish"))
}

func TestNewAssetsCommand(t *testing.T) {
	cmd := NewAssetsCommand()
	assert.Equal(t, "assets", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "upload")
	assert.Contains(t, commandNames, "process")
}

func TestNewSpacesCommand(t *testing.T) {
	cmd := NewSpacesCommand()
	assert.Equal(t, "spaces", cmd.Use)
	assert.Len(t, cmd.Commands(), 5)
}

func TestCreateClientRequiresToken(t *testing.T) {
	client, err := createClient()
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrTokenRequired)
}

func TestConfigValueRoundTrip(t *testing.T) {
	config := &cliConfig{}

	require.NoError(t, setConfigValue(config, "space", "space-id"))
	require.NoError(t, setConfigValue(config, "environment", "staging"))

	value, err := getConfigValue(config, "space")
	require.NoError(t, err)
	assert.Equal(t, "space-id", value)

	value, err = getConfigValue(config, "environment")
	require.NoError(t, err)
	assert.Equal(t, "staging", value)

	err = setConfigValue(config, "bogus", "x")
	assert.ErrorIs(t, err, ErrUnknownConfigKey)

	_, err = getConfigValue(config, "bogus")
	assert.ErrorIs(t, err, ErrUnknownConfigKey)
}

func TestPublicationStatus(t *testing.T) {
	tests := []struct {
		name string
		sys  *cma.Sys
		want string
	}{
		{"nil sys", nil, "N/A"},
		{"draft", &cma.Sys{Version: 1}, "draft"},
		{"published", &cma.Sys{Version: 2, PublishedVersion: 1}, "published"},
		{"changed", &cma.Sys{Version: 5, PublishedVersion: 1}, "changed"},
		{"archived", &cma.Sys{Version: 3, ArchivedVersion: 2}, "archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicationStatus(tt.sys))
		})
	}
}

func TestLocalized(t *testing.T) {
	values := map[string]string{"en-US": "Hello", "de-DE": "Hallo"}

	assert.Equal(t, "Hallo", localized(values, "de-DE"))
	assert.Equal(t, "Hello", localized(values, "en-US"))
	assert.Equal(t, NotAvailable, localized(nil, "en-US"))

	// An unknown locale falls back to whatever value exists.
	assert.NotEqual(t, NotAvailable, localized(values, "fr-FR"))
}

func TestSysHelpers(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sys := &cma.Sys{ID: "abc", Version: 7, CreatedAt: &now}

	assert.Equal(t, "abc", sysID(sys))
	assert.Equal(t, "7", sysVersion(sys))
	assert.Equal(t, "2024-03-01", sysTime(sys.CreatedAt))

	assert.Equal(t, NotAvailable, sysID(nil))
	assert.Equal(t, NotAvailable, sysVersion(nil))
	assert.Equal(t, NotAvailable, sysTime(nil))
}
