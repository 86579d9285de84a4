package cflog

import (
	"errors"
	"io"

	"github.com/bft-labs/cflog/pkg/source"
)

// Errors returned by the public API. All are checkable with errors.Is;
// wrapped instances carry line numbers and field names for diagnostics.
var (
	// ErrSourceUnavailable is returned when the locator cannot be
	// opened: missing file, missing object, denied access, or an
	// unreachable store. Aliases the source package sentinel so either
	// can be used in checks.
	ErrSourceUnavailable = source.ErrUnavailable

	// ErrMalformedHeader is returned when the leading #Version and
	// #Fields comment lines are missing or do not match the expected
	// grammar. The stream is unusable.
	ErrMalformedHeader = errors.New("cflog: malformed header")

	// ErrFieldCountMismatch is returned when a data line has a
	// different number of tab-separated tokens than the header
	// declared. This signals truncation or corruption and fails the
	// session rather than being skipped.
	ErrFieldCountMismatch = errors.New("cflog: field count mismatch")

	// ErrFieldType is returned when a token cannot be coerced to its
	// field's declared type.
	ErrFieldType = errors.New("cflog: field type error")

	// ErrNoCurrentRecord is returned by accessors called before the
	// first advance or after exhaustion or an error.
	ErrNoCurrentRecord = errors.New("cflog: no current record")

	// ErrUnknownField is returned when a field name is absent from the
	// stream's schema.
	ErrUnknownField = errors.New("cflog: unknown field")

	// ErrSessionClosed is returned by any call made after Close.
	ErrSessionClosed = errors.New("cflog: session closed")
)

// ErrEndOfLog indicates normal exhaustion of the log stream. Further
// calls to Next keep returning it; the source is not re-read.
var ErrEndOfLog = io.EOF
