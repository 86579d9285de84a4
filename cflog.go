// Package cflog provides streaming readers for Amazon CloudFront
// standard access logs on local disk or S3.
//
// Example usage:
//
//	r, err := cflog.Open(ctx, "/var/log/cdn/E123.2024-01-01-13.abcd.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	for {
//	    rec, err := r.Next(ctx)
//	    if errors.Is(err, cflog.ErrEndOfLog) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(rec.Entry().URIStem)
//	}
//
// This package re-exports the core API from pkg/cflog; import the
// sub-packages directly for selective use.
package cflog

import (
	"context"

	"github.com/rs/zerolog"

	reader "github.com/bft-labs/cflog/pkg/cflog"
	"github.com/bft-labs/cflog/pkg/source"
)

// Re-exported core types. See pkg/cflog for documentation.
type (
	// Reader is one open reading session over one log stream.
	Reader = reader.Reader

	// Record is one parsed log line.
	Record = reader.Record

	// Entry is the statically typed view of a standard log record.
	Entry = reader.Entry

	// Schema is the header-declared field list of a stream.
	Schema = reader.Schema

	// Field is one column of a log stream.
	Field = reader.Field

	// Value is the typed content of one field.
	Value = reader.Value

	// Kind is the semantic type of a field.
	Kind = reader.Kind

	// Option configures a Reader.
	Option = reader.Option

	// RemoteConfig carries access parameters for the object store.
	RemoteConfig = source.RemoteConfig
)

// Re-exported errors. All are checkable with errors.Is.
var (
	ErrSourceUnavailable  = reader.ErrSourceUnavailable
	ErrMalformedHeader    = reader.ErrMalformedHeader
	ErrFieldCountMismatch = reader.ErrFieldCountMismatch
	ErrFieldType          = reader.ErrFieldType
	ErrNoCurrentRecord    = reader.ErrNoCurrentRecord
	ErrUnknownField       = reader.ErrUnknownField
	ErrSessionClosed      = reader.ErrSessionClosed
	ErrEndOfLog           = reader.ErrEndOfLog
)

// Open opens a log stream over a local file path or an s3://bucket/key
// URI. See pkg/cflog.Open.
func Open(ctx context.Context, locator string, opts ...Option) (*Reader, error) {
	return reader.Open(ctx, locator, opts...)
}

// WithLogger sets the session logger. See pkg/cflog.WithLogger.
func WithLogger(logger zerolog.Logger) Option {
	return reader.WithLogger(logger)
}

// WithS3Client injects a pre-built S3 client for remote locators.
func WithS3Client(client source.ObjectGetter) Option {
	return reader.WithS3Client(client)
}

// WithRemoteConfig sets the object-store access parameters.
func WithRemoteConfig(rc RemoteConfig) Option {
	return reader.WithRemoteConfig(rc)
}

// WithBufferSize sets the read buffer size in bytes.
func WithBufferSize(n int) Option {
	return reader.WithBufferSize(n)
}
