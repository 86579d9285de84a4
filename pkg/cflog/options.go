package cflog

import (
	"github.com/rs/zerolog"

	"github.com/bft-labs/cflog/pkg/source"
)

// Option configures optional behavior of a Reader.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	s3Client source.ObjectGetter
	remote   source.RemoteConfig
	bufSize  int
}

func defaultOptions() options {
	return options{
		logger:  zerolog.Nop(),
		bufSize: source.DefaultBufferSize,
	}
}

// WithLogger sets the logger for session diagnostics. If not provided,
// logging is disabled.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithS3Client sets a pre-built S3 client for remote locators, taking
// precedence over WithRemoteConfig. Use this to inject a fake client
// in tests or a client with custom middleware.
func WithS3Client(client source.ObjectGetter) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithRemoteConfig sets the access parameters used to build the S3
// client for remote locators. The parameters are forwarded to the AWS
// SDK verbatim.
func WithRemoteConfig(rc source.RemoteConfig) Option {
	return func(o *options) {
		o.remote = rc
	}
}

// WithBufferSize sets the read buffer size in bytes. Values <= 0 keep
// the default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufSize = n
	}
}
