package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/contentful-labs/cma-client/pkg/cma"
	"github.com/contentful-labs/cma-client/pkg/cmaclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrTokenRequired       = errors.New("management token is required (use --token, CMA_TOKEN, or 'cma login')")
	ErrContentTypeRequired = errors.New("content type id is required (--content-type)")
	ErrFieldsFileRequired  = errors.New("fields file is required (--from-file)")
	ErrFileURLRequired     = errors.New("file URL is required (--file-url)")
	ErrUnknownConfigKey    = errors.New("unknown config key")
)

// createClient builds a management client from the effective configuration.
func createClient() (cma.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, ErrTokenRequired
	}

	config := &cma.Config{
		AccessToken: token,
		Host:        viper.GetString("host"),
		SpaceID:     viper.GetString("space"),
		Environment: viper.GetString("environment"),
	}

	client, err := cmaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// renderJSON writes data to stdout as indented JSON.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// renderYAML writes data to stdout as YAML.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}

// renderStructured writes data in the requested structured format, or calls
// renderTable for the default table output.
func renderStructured(data interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(data)
	case OutputFormatYAML:
		return renderYAML(data)
	default:
		return renderTable()
	}
}

// sysID returns the id of a resource sys, or N/A when absent.
func sysID(sys *cma.Sys) string {
	if sys == nil || sys.ID == "" {
		return NotAvailable
	}

	return sys.ID
}

// sysVersion formats the version of a resource sys.
func sysVersion(sys *cma.Sys) string {
	if sys == nil {
		return NotAvailable
	}

	return fmt.Sprintf("%d", sys.Version)
}

// sysTime formats a sys timestamp for table output.
func sysTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}

	return t.Format("2006-01-02")
}

// loadRequestFile reads a request body from disk, accepting JSON or YAML.
func loadRequestFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if json.Unmarshal(data, out) == nil {
		return nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s as JSON or YAML: %w", path, err)
	}

	return nil
}

// publicationStatus derives the lifecycle state of an entry or asset from
// its sys metadata.
func publicationStatus(sys *cma.Sys) string {
	switch {
	case sys == nil:
		return NotAvailable
	case sys.ArchivedVersion > 0:
		return "archived"
	case sys.PublishedVersion == 0:
		return "draft"
	case sys.Version > sys.PublishedVersion+1:
		return "changed"
	default:
		return "published"
	}
}

// localized picks a display value out of a localized string map, preferring
// the given locale and falling back to any value present.
func localized(values map[string]string, locale string) string {
	if len(values) == 0 {
		return NotAvailable
	}

	if value, ok := values[locale]; ok && value != "" {
		return value
	}

	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return NotAvailable
}
