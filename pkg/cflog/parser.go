package cflog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Layouts for the timestamp-component fields.
const (
	dateLayout     = "2006-01-02"
	combinedLayout = "2006-01-02 15:04:05"
)

// parseRecord turns one data line into a Record under the given
// schema. It is a pure function of its inputs: parsing the same line
// twice yields field-equal records. lineNo is carried into the record
// and into any error for diagnostics.
func parseRecord(line string, schema *Schema, lineNo int) (*Record, error) {
	tokens := strings.Split(line, "\t")
	if len(tokens) != schema.Len() {
		return nil, fmt.Errorf("%w: line %d has %d fields, header declares %d (%q)",
			ErrFieldCountMismatch, lineNo, len(tokens), schema.Len(), line)
	}

	rec := &Record{
		schema: schema,
		raw:    tokens,
		values: make([]Value, len(tokens)),
		line:   lineNo,
	}

	var dateTok, timeTok string
	for i, f := range schema.fields {
		tok := tokens[i]
		if tok == absentToken {
			rec.values[i] = nullValue(f.Kind)
			continue
		}

		v := Value{kind: f.Kind, raw: tok}
		switch f.Kind {
		case KindInt:
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q at line %d: %q is not an integer",
					ErrFieldType, f.Name, lineNo, tok)
			}
			v.num = n
		case KindFloat:
			fl, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q at line %d: %q is not a number",
					ErrFieldType, f.Name, lineNo, tok)
			}
			v.flt = fl
		case KindDate:
			dateTok = tok
			v.str = tok
		case KindTime:
			timeTok = tok
			v.str = tok
		default:
			v.str = decodeToken(tok, f.encoded)
		}
		rec.values[i] = v
	}

	if dateTok != "" && timeTok != "" {
		ts, err := time.Parse(combinedLayout, dateTok+" "+timeTok)
		if err != nil {
			return nil, fmt.Errorf("%w: fields \"date\"/\"time\" at line %d: %q %q is not a timestamp",
				ErrFieldType, lineNo, dateTok, timeTok)
		}
		rec.ts = ts.UTC()
		rec.hasTS = true
	} else if dateTok != "" {
		// Date-only streams still get a midnight timestamp.
		ts, err := time.Parse(dateLayout, dateTok)
		if err != nil {
			return nil, fmt.Errorf("%w: field \"date\" at line %d: %q is not a date",
				ErrFieldType, lineNo, dateTok)
		}
		rec.ts = ts.UTC()
		rec.hasTS = true
	}

	return rec, nil
}

// decodeToken undoes the CDN's percent-encoding for fields that carry
// it. A token that fails to decode is kept verbatim rather than
// failing the line; CloudFront occasionally emits stray '%' bytes in
// user-controlled fields.
func decodeToken(tok string, encoded bool) string {
	if !encoded {
		return tok
	}
	dec, err := url.PathUnescape(tok)
	if err != nil {
		return tok
	}
	return dec
}
