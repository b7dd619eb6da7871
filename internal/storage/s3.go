// Package storage stages local file bytes to S3 ahead of the warehouse
// bulk load.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/thaole73/snowload/internal/config"
	"github.com/thaole73/snowload/pkg/snowload"
)

// S3Stager uploads staged objects with PutObject. The bulk-load command is
// responsible for deleting staged objects after a successful load (PURGE);
// the stager never deletes.
//
// Safe for concurrent use; the underlying client is.
type S3Stager struct {
	client *s3.Client
	bucket string
}

// NewS3Stager creates a stager for the configured bucket. Credentials come
// from the run configuration when set; otherwise the default AWS credential
// chain (environment, shared config, instance role) is used.
func NewS3Stager(ctx context.Context, cfg *config.Config) (*S3Stager, error) {
	var client *s3.Client
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		client = s3.New(s3.Options{
			Region: cfg.AWSRegion,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "",
			),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Stager{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Stage writes body to the configured bucket under key.
func (s *S3Stager) Stage(ctx context.Context, key string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// ObjectKey builds the staged object key for one candidate file:
// <prefix><timestamp>_<filename>, with the timestamp in seconds resolution
// so successive runs of the same file stage distinct objects.
func ObjectKey(prefix string, ts time.Time, filename string) string {
	return prefix + ts.Format(snowload.ObjectKeyTimeLayout) + "_" + filename
}

// Verify S3Stager implements the interface at compile time
var _ snowload.ObjectStager = (*S3Stager)(nil)
