package cflog

import (
	"fmt"
	"time"
)

// Record is one parsed log line. It retains the raw token list in
// line order, so fields outside the known CloudFront table remain
// accessible positionally, and re-serializing the tokens reproduces
// the original line.
type Record struct {
	schema *Schema
	raw    []string
	values []Value
	ts     time.Time
	hasTS  bool
	line   int
}

// Field returns the typed value of a named field.
func (r *Record) Field(name string) (Value, error) {
	i, ok := r.schema.Lookup(name)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.values[i], nil
}

// FieldAt returns the typed value at a schema position. This is the
// positional fallback for callers iterating columns they do not know
// by name.
func (r *Record) FieldAt(i int) (Value, error) {
	if i < 0 || i >= len(r.values) {
		return Value{}, fmt.Errorf("%w: position %d of %d", ErrUnknownField, i, len(r.values))
	}
	return r.values[i], nil
}

// Tokens returns the raw tokens exactly as split from the line,
// undecoded, with the "-" sentinel intact. Joining them with tabs
// reproduces the data line.
func (r *Record) Tokens() []string {
	out := make([]string, len(r.raw))
	copy(out, r.raw)
	return out
}

// Line returns the 1-based line number of this record in its stream,
// counting the header lines.
func (r *Record) Line() int { return r.line }

// Timestamp returns the instant formed by the record's date and time
// fields, in UTC. ok is false when the schema lacks either field or
// both carried the absent sentinel.
func (r *Record) Timestamp() (ts time.Time, ok bool) {
	return r.ts, r.hasTS
}

// Map returns the record as field-name → plain Go value (nil for
// absent fields), suitable for JSON encoding.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, f := range r.schema.fields {
		m[f.Name] = r.values[i].Any()
	}
	return m
}
