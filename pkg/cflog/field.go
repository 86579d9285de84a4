package cflog

// Kind is the semantic type of a log field.
type Kind int

const (
	// KindString is an opaque or percent-encoded text field.
	KindString Kind = iota

	// KindInt is a decimal integer field.
	KindInt

	// KindFloat is a decimal fraction field (durations in seconds).
	KindFloat

	// KindDate is the date half of the record timestamp (2006-01-02).
	KindDate

	// KindTime is the time half of the record timestamp (15:04:05).
	KindTime
)

// String returns the kind name as used in schema listings.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return "string"
	}
}

// Field is one column of a log stream: its declared name and the
// semantic type resolved from the CloudFront field table.
type Field struct {
	Name string
	Kind Kind

	// encoded marks fields the CDN percent-encodes on write.
	encoded bool
}

// Value is the typed content of one field in one record. It is a small
// tagged union: exactly one of the typed accessors is meaningful for a
// given Kind, and IsNull reports the "-" absent-value sentinel.
type Value struct {
	kind Kind
	null bool
	raw  string
	str  string
	num  int64
	flt  float64
}

// Null returns the absent value for a kind.
func nullValue(k Kind) Value {
	return Value{kind: k, null: true, raw: absentToken}
}

// Kind returns the field kind this value was coerced under.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the field held the absent-value sentinel.
func (v Value) IsNull() bool { return v.null }

// String returns the decoded text of the field, or "" when null. For
// numeric and timestamp-component fields it returns the raw token.
func (v Value) String() string {
	if v.null {
		return ""
	}
	if v.str != "" || v.kind == KindString {
		return v.str
	}
	return v.raw
}

// Raw returns the token exactly as it appeared on the line, including
// the "-" sentinel and any percent-encoding.
func (v Value) Raw() string { return v.raw }

// Int64 returns the integer content, or 0 when null or non-integer.
func (v Value) Int64() int64 { return v.num }

// Float64 returns the float content, or 0 when null or non-float.
func (v Value) Float64() float64 { return v.flt }

// Any returns the value as a plain Go value for serialization: nil
// when null, otherwise string, int64 or float64 per kind.
func (v Value) Any() any {
	switch {
	case v.null:
		return nil
	case v.kind == KindInt:
		return v.num
	case v.kind == KindFloat:
		return v.flt
	default:
		return v.String()
	}
}

// fieldKinds maps every documented CloudFront standard-log field name
// to its semantic type. Names absent from this table resolve to
// KindString so that newer format versions never fail to parse.
var fieldKinds = map[string]Kind{
	"date":                        KindDate,
	"time":                        KindTime,
	"x-edge-location":             KindString,
	"sc-bytes":                    KindInt,
	"c-ip":                        KindString,
	"cs-method":                   KindString,
	"cs(Host)":                    KindString,
	"cs-uri-stem":                 KindString,
	"sc-status":                   KindInt,
	"cs(Referer)":                 KindString,
	"cs(User-Agent)":              KindString,
	"cs-uri-query":                KindString,
	"cs(Cookie)":                  KindString,
	"x-edge-result-type":          KindString,
	"x-edge-request-id":           KindString,
	"x-host-header":               KindString,
	"cs-protocol":                 KindString,
	"cs-bytes":                    KindInt,
	"time-taken":                  KindFloat,
	"x-forwarded-for":             KindString,
	"ssl-protocol":                KindString,
	"ssl-cipher":                  KindString,
	"x-edge-response-result-type": KindString,
	"cs-protocol-version":         KindString,
	"fle-status":                  KindString,
	"fle-encrypted-fields":        KindInt,
	"c-port":                      KindInt,
	"time-to-first-byte":          KindFloat,
	"x-edge-detailed-result-type": KindString,
	"sc-content-type":             KindString,
	"sc-content-len":              KindInt,
	"sc-range-start":              KindInt,
	"sc-range-end":                KindInt,
}

// encodedFields marks the fields CloudFront percent-encodes; their
// tokens are URL-decoded during parsing.
var encodedFields = map[string]bool{
	"cs-uri-stem":    true,
	"cs-uri-query":   true,
	"cs(Referer)":    true,
	"cs(User-Agent)": true,
	"cs(Cookie)":     true,
}
