package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileOpener opens log files from the local filesystem.
type FileOpener struct{}

// Open opens the file at the given path for reading.
func (FileOpener) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return f, nil
}
