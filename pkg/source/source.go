package source

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrUnavailable indicates that a locator could not be opened: the file
// is missing or unreadable, the object does not exist, access was
// denied, or the store could not be reached. The wrapped error carries
// the underlying cause.
var ErrUnavailable = errors.New("source: unavailable")

// Opener opens a locator and returns its raw byte stream.
// Implementations exist for local files and S3 objects.
type Opener interface {
	// Open returns the raw (possibly compressed) byte stream for the
	// locator. Failures wrap ErrUnavailable.
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// IsRemote reports whether the locator names an S3 object rather than
// a local file.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, "s3://")
}
