package cflog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ncruces/go-strftime"
	"github.com/rs/zerolog"

	"github.com/bft-labs/cflog/pkg/source"
)

// Reader is one open, forward-only reading session over one log
// stream. It owns the underlying byte source and any decompression
// handle; both are released by Close, which every exit path must
// reach. A Reader is not safe for concurrent use; open independent
// Readers for concurrent streams.
type Reader struct {
	locator string
	lines   *source.Lines
	schema  *Schema
	logger  zerolog.Logger

	cur       *Record
	lineNo    int
	exhausted bool
	closed    bool
	err       error
}

// Open opens the log stream named by locator, which is either a local
// file path or an s3://bucket/key URI, and parses its two header
// lines. It returns ErrSourceUnavailable when the locator cannot be
// opened and ErrMalformedHeader when the header grammar does not
// match. On any error the byte source is closed before returning.
func Open(ctx context.Context, locator string, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	opener, err := resolveOpener(ctx, locator, o)
	if err != nil {
		return nil, err
	}

	raw, err := opener.Open(ctx, locator)
	if err != nil {
		return nil, err
	}

	lines, err := source.NewLines(raw, o.bufSize)
	if err != nil {
		// NewLines closes raw on failure.
		return nil, err
	}

	r := &Reader{
		locator: locator,
		lines:   lines,
		logger:  o.logger,
	}
	if err := r.readHeader(ctx); err != nil {
		lines.Close()
		return nil, err
	}

	r.logger.Debug().
		Str("locator", locator).
		Str("version", r.schema.Version).
		Int("fields", r.schema.Len()).
		Msg("log stream opened")
	return r, nil
}

// resolveOpener picks the byte-source opener for the locator.
func resolveOpener(ctx context.Context, locator string, o options) (source.Opener, error) {
	if !source.IsRemote(locator) {
		return source.FileOpener{}, nil
	}
	if o.s3Client != nil {
		return source.NewS3OpenerWithClient(o.s3Client), nil
	}
	return source.NewS3Opener(ctx, o.remote)
}

// readHeader consumes and parses the two leading comment lines.
func (r *Reader) readHeader(ctx context.Context) error {
	versionLine, err := r.nextLine(ctx)
	if err != nil {
		return fmt.Errorf("%w: missing version line: %v", ErrMalformedHeader, err)
	}
	fieldsLine, err := r.nextLine(ctx)
	if err != nil {
		return fmt.Errorf("%w: missing fields line: %v", ErrMalformedHeader, err)
	}
	schema, err := parseHeader(versionLine, fieldsLine)
	if err != nil {
		return err
	}
	r.schema = schema
	return nil
}

func (r *Reader) nextLine(ctx context.Context) (string, error) {
	line, err := r.lines.Next(ctx)
	if err != nil {
		return "", err
	}
	r.lineNo++
	return line, nil
}

// Schema returns the stream's field schema.
func (r *Reader) Schema() *Schema { return r.schema }

// Next advances to the next record and returns it. It returns
// ErrEndOfLog once the stream is exhausted and keeps returning it on
// further calls without re-reading the source. A read or parse error
// is terminal: the current record is cleared and every later call
// returns the same error. After Close, Next returns ErrSessionClosed.
func (r *Reader) Next(ctx context.Context) (*Record, error) {
	switch {
	case r.closed:
		return nil, ErrSessionClosed
	case r.err != nil:
		return nil, r.err
	case r.exhausted:
		return nil, ErrEndOfLog
	}

	line, err := r.nextLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.exhausted = true
			r.cur = nil
			r.logger.Debug().Str("locator", r.locator).Int("lines", r.lineNo).Msg("log stream exhausted")
			return nil, ErrEndOfLog
		}
		r.err = fmt.Errorf("cflog: read line %d: %w", r.lineNo+1, err)
		r.cur = nil
		return nil, r.err
	}

	rec, err := parseRecord(line, r.schema, r.lineNo)
	if err != nil {
		r.err = err
		r.cur = nil
		return nil, err
	}
	r.cur = rec
	return rec, nil
}

// Record returns the current record, or nil before the first advance,
// after exhaustion, after an error, or after Close.
func (r *Reader) Record() *Record {
	if r.closed {
		return nil
	}
	return r.cur
}

// Field returns the typed value of a named field in the current
// record. It returns ErrNoCurrentRecord when there is no current
// record and ErrUnknownField when the name is not in the schema.
func (r *Reader) Field(name string) (Value, error) {
	if err := r.requireCurrent(); err != nil {
		return Value{}, err
	}
	return r.cur.Field(name)
}

// FormatTimestamp renders the current record's combined timestamp
// using a strftime pattern, e.g. "%Y-%m-%d %H:%M:%S".
func (r *Reader) FormatTimestamp(pattern string) (string, error) {
	if err := r.requireCurrent(); err != nil {
		return "", err
	}
	ts, ok := r.cur.Timestamp()
	if !ok {
		return "", fmt.Errorf("%w: stream has no date and time fields", ErrUnknownField)
	}
	return strftime.Format(pattern, ts), nil
}

func (r *Reader) requireCurrent() error {
	if r.closed {
		return ErrSessionClosed
	}
	if r.cur == nil {
		return ErrNoCurrentRecord
	}
	return nil
}

// Close releases the byte source and any decompression handle. It is
// idempotent: the second and later calls return nil without touching
// the source. After Close every other method fails with
// ErrSessionClosed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.cur = nil
	err := r.lines.Close()
	r.logger.Debug().Str("locator", r.locator).Msg("log stream closed")
	return err
}
