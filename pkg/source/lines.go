package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// DefaultBufferSize is the read buffer size used when none is given.
const DefaultBufferSize = 64 * 1024

// gzip member header magic.
var gzipMagic = []byte{0x1f, 0x8b}

// Lines streams decoded text lines from an opened byte stream. It
// detects gzip compression by sniffing the stream's magic bytes, so a
// compressed object is handled the same whether or not its name ends
// in .gz. One buffered line is resident at a time; the stream is never
// materialized in full.
type Lines struct {
	raw    io.ReadCloser
	gz     *gzip.Reader
	br     *bufio.Reader
	closed bool
}

// NewLines wraps an opened stream. bufSize <= 0 selects
// DefaultBufferSize. The stream is closed on error.
func NewLines(raw io.ReadCloser, bufSize int) (*Lines, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	br := bufio.NewReaderSize(raw, bufSize)
	l := &Lines{raw: raw, br: br}

	magic, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		raw.Close()
		return nil, fmt.Errorf("%w: sniff stream: %v", ErrUnavailable, err)
	}
	if len(magic) == len(gzipMagic) && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("%w: open gzip stream: %v", ErrUnavailable, err)
		}
		l.gz = gz
		l.br = bufio.NewReaderSize(gz, bufSize)
	}
	return l, nil
}

// Next returns the next line without its trailing newline. It returns
// io.EOF after the last line; any other error is an I/O failure from
// the underlying stream.
func (l *Lines) Next(ctx context.Context) (string, error) {
	if l.closed {
		return "", errors.New("source: lines closed")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	line, err := l.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.EOF
			}
			// Final line without a terminator.
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the decompressor and the underlying stream. It is
// idempotent; only the first call does any work.
func (l *Lines) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	if l.gz != nil {
		if err := l.gz.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.raw.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
