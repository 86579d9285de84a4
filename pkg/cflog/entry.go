package cflog

import "time"

// Entry is a statically typed view of a standard CloudFront log
// record. Pointer fields are nil when the log carried the absent
// sentinel. Fields whose columns are missing from the stream's schema
// are left at their zero values.
type Entry struct {
	Timestamp              time.Time
	EdgeLocation           string
	SentBytes              int64
	ClientIP               string
	Method                 string
	Host                   string
	URIStem                string
	StatusCode             int64
	Referer                *string
	UserAgent              *string
	QueryString            *string
	Cookie                 *string
	EdgeResultType         string
	RequestID              string
	HostHeader             string
	Protocol               string
	ReceivedBytes          int64
	TimeTaken              float64
	ForwardedFor           *string
	SSLProtocol            *string
	SSLCipher              *string
	EdgeResponseResultType string
	ProtocolVersion        string
	FLEStatus              *string
	FLEEncryptedFields     *int64
	ClientPort             int64
	TimeToFirstByte        float64
	EdgeDetailedResultType string
	ContentType            *string
	ContentLength          *int64
	RangeStart             *int64
	RangeEnd               *int64
}

// Entry builds the typed view of the record.
func (r *Record) Entry() *Entry {
	e := &Entry{
		EdgeLocation:           r.str("x-edge-location"),
		SentBytes:              r.i64("sc-bytes"),
		ClientIP:               r.str("c-ip"),
		Method:                 r.str("cs-method"),
		Host:                   r.str("cs(Host)"),
		URIStem:                r.str("cs-uri-stem"),
		StatusCode:             r.i64("sc-status"),
		Referer:                r.optStr("cs(Referer)"),
		UserAgent:              r.optStr("cs(User-Agent)"),
		QueryString:            r.optStr("cs-uri-query"),
		Cookie:                 r.optStr("cs(Cookie)"),
		EdgeResultType:         r.str("x-edge-result-type"),
		RequestID:              r.str("x-edge-request-id"),
		HostHeader:             r.str("x-host-header"),
		Protocol:               r.str("cs-protocol"),
		ReceivedBytes:          r.i64("cs-bytes"),
		TimeTaken:              r.f64("time-taken"),
		ForwardedFor:           r.optStr("x-forwarded-for"),
		SSLProtocol:            r.optStr("ssl-protocol"),
		SSLCipher:              r.optStr("ssl-cipher"),
		EdgeResponseResultType: r.str("x-edge-response-result-type"),
		ProtocolVersion:        r.str("cs-protocol-version"),
		FLEStatus:              r.optStr("fle-status"),
		FLEEncryptedFields:     r.optI64("fle-encrypted-fields"),
		ClientPort:             r.i64("c-port"),
		TimeToFirstByte:        r.f64("time-to-first-byte"),
		EdgeDetailedResultType: r.str("x-edge-detailed-result-type"),
		ContentType:            r.optStr("sc-content-type"),
		ContentLength:          r.optI64("sc-content-len"),
		RangeStart:             r.optI64("sc-range-start"),
		RangeEnd:               r.optI64("sc-range-end"),
	}
	e.Timestamp, _ = r.Timestamp()
	return e
}

func (r *Record) str(name string) string {
	v, err := r.Field(name)
	if err != nil {
		return ""
	}
	return v.String()
}

func (r *Record) optStr(name string) *string {
	v, err := r.Field(name)
	if err != nil || v.IsNull() {
		return nil
	}
	s := v.String()
	return &s
}

func (r *Record) i64(name string) int64 {
	v, err := r.Field(name)
	if err != nil {
		return 0
	}
	return v.Int64()
}

func (r *Record) optI64(name string) *int64 {
	v, err := r.Field(name)
	if err != nil || v.IsNull() {
		return nil
	}
	n := v.Int64()
	return &n
}

func (r *Record) f64(name string) float64 {
	v, err := r.Field(name)
	if err != nil {
		return 0
	}
	return v.Float64()
}
