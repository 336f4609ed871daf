// Package storage uploads blobs to S3-compatible object storage and returns
// their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "blog-app/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(appconfig.S3_REGION),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			appconfig.S3_ACCESS_KEY,
			appconfig.S3_SECRET_KEY,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if appconfig.S3_ENDPOINT != "" {
			o.BaseEndpoint = aws.String(appconfig.S3_ENDPOINT)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// Upload puts the stream under the given key and returns the object's public
// URL. The key should already be collision-free (caller generates it).
func Upload(ctx context.Context, body io.Reader, contentType, key string) (string, error) {
	client, err := newClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := appconfig.S3_BUCKET
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return PublicURL(key), nil
}

// PublicURL builds the browsable URL for an uploaded key. Custom endpoints
// (minio and friends) use path-style addressing.
func PublicURL(key string) string {
	if appconfig.S3_ENDPOINT != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(appconfig.S3_ENDPOINT, "/"), appconfig.S3_BUCKET, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", appconfig.S3_BUCKET, appconfig.S3_REGION, key)
}
