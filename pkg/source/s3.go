package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the subset of the S3 client used to fetch log
// objects. *s3.Client satisfies this interface.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// RemoteConfig carries access parameters for the object store. All
// fields are optional; empty fields fall back to the SDK's default
// resolution chain (environment, shared config, instance metadata).
// The contents are forwarded to the SDK verbatim and never interpreted
// here.
type RemoteConfig struct {
	// Region is the AWS region of the bucket.
	Region string

	// Profile selects a shared-config profile.
	Profile string

	// Endpoint overrides the S3 endpoint URL. Path-style addressing is
	// used when set, which is what MinIO and localstack expect.
	Endpoint string

	// AccessKeyID, SecretAccessKey and SessionToken configure static
	// credentials when AccessKeyID is non-empty.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// S3Opener opens log objects from S3.
type S3Opener struct {
	client ObjectGetter
}

// NewS3Opener builds an opener with a real S3 client resolved from the
// remote configuration.
func NewS3Opener(ctx context.Context, rc RemoteConfig) (*S3Opener, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if rc.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(rc.Region))
	}
	if rc.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(rc.Profile))
	}
	if rc.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(rc.AccessKeyID, rc.SecretAccessKey, rc.SessionToken)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrUnavailable, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if rc.Endpoint != "" {
			o.BaseEndpoint = aws.String(rc.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Opener{client: client}, nil
}

// NewS3OpenerWithClient builds an opener around an existing client.
func NewS3OpenerWithClient(client ObjectGetter) *S3Opener {
	return &S3Opener{client: client}
}

// Open fetches the object named by an s3://bucket/key locator and
// returns its body stream.
func (o *S3Opener) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	bucket, key, err := SplitS3URI(locator)
	if err != nil {
		return nil, err
	}

	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get s3://%s/%s: %v", ErrUnavailable, bucket, key, err)
	}
	return out.Body, nil
}

// SplitS3URI splits an s3://bucket/key locator into bucket and key.
func SplitS3URI(locator string) (bucket, key string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", fmt.Errorf("%w: parse %q: %v", ErrUnavailable, locator, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: %q is not an s3 URI", ErrUnavailable, locator)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q is missing a bucket or key", ErrUnavailable, locator)
	}
	return u.Host, key, nil
}
