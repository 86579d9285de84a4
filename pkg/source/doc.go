// Package source provides byte sources for CloudFront log objects.
//
// A source is resolved from a locator string: a plain filesystem path
// opens a local file, an s3:// URI streams an object from S3. Either
// way the caller receives a Lines streamer that detects gzip
// compression from the stream itself and yields decoded text lines one
// at a time.
//
// The S3 client is injected behind the ObjectGetter interface so that
// transfer mechanics, retries, and credential resolution stay with the
// AWS SDK.
package source
