package cflog

import (
	"fmt"
	"strings"
)

// Header comment markers, per the CloudFront standard log format.
const (
	versionMarker = "#Version:"
	fieldsMarker  = "#Fields:"
)

// absentToken is the sentinel CloudFront writes for a field with no
// value.
const absentToken = "-"

// Schema describes one log stream: the format version declared by its
// #Version line and the ordered field list declared by its #Fields
// line. A Schema is built once when the stream is opened and is
// immutable afterwards.
type Schema struct {
	// Version is the format version tag, e.g. "1.0".
	Version string

	fields []Field
	index  map[string]int
}

// parseHeader builds a Schema from the two leading comment lines.
func parseHeader(versionLine, fieldsLine string) (*Schema, error) {
	version, ok := strings.CutPrefix(strings.TrimSpace(versionLine), versionMarker)
	if !ok {
		return nil, fmt.Errorf("%w: first line %q does not declare a version", ErrMalformedHeader, versionLine)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("%w: empty version tag", ErrMalformedHeader)
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(fieldsLine), fieldsMarker)
	if !ok {
		return nil, fmt.Errorf("%w: second line %q does not declare fields", ErrMalformedHeader, fieldsLine)
	}
	names := strings.Fields(rest)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty field list", ErrMalformedHeader)
	}

	s := &Schema{
		Version: version,
		fields:  make([]Field, 0, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		// Unknown names resolve to plain strings so newer format
		// versions keep parsing.
		kind := fieldKinds[name]
		s.fields = append(s.fields, Field{
			Name:    name,
			Kind:    kind,
			encoded: encodedFields[name],
		})
		s.index[name] = i
	}
	return s, nil
}

// Fields returns the ordered field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Lookup returns the position of a field name in the schema.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}
