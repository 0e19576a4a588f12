package client

import (
	"errors"
	"strconv"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// ErrMissingVersion is returned when a write requires sys.version and the
// resource was never fetched from the API.
var ErrMissingVersion = errors.New("resource carries no sys.version; fetch it before writing")

// writeVersion extracts the optimistic-locking version for the
// X-Contentful-Version header.
func writeVersion(sys *cma.Sys) (string, error) {
	if sys == nil || sys.Version == 0 {
		return "", ErrMissingVersion
	}

	return strconv.Itoa(sys.Version), nil
}
