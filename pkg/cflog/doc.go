// Package cflog reads Amazon CloudFront standard access logs.
//
// A log file starts with two comment lines declaring the format
// version and the ordered field list, followed by tab-separated data
// lines. The field set varies across format versions; the schema is
// taken from the header, so a stream declares its own shape. Fields
// this package does not recognize are exposed as plain strings.
//
// Open a session over a local file or an s3:// object and pull records
// one at a time:
//
//	r, err := cflog.Open(ctx, "s3://my-logs/E123.2024-01-01-13.abcd.gz",
//	    cflog.WithRemoteConfig(source.RemoteConfig{Region: "eu-west-1"}))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    rec, err := r.Next(ctx)
//	    if errors.Is(err, cflog.ErrEndOfLog) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    ip, _ := rec.Field("c-ip")
//	    fmt.Println(ip.String())
//	}
//
// Gzip compression is detected from the stream itself, a "-" token is
// surfaced as a null value, and the date and time columns are combined
// into a single UTC timestamp on each record.
package cflog
