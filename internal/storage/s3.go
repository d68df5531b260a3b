package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

const (
	getTimeout = 30 * time.Second
	putTimeout = time.Minute
)

// S3Store implements ObjectStore on the AWS S3 client.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
}

// Compile-time interface check.
var _ ObjectStore = (*S3Store)(nil)

// NewS3Store creates an S3Store from a client initialized off the shared
// AWS config.
func NewS3Store(client *s3.Client) *S3Store {
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
	}
}

// GetObject reads the full object body into memory.
func (s *S3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, getTimeout)
	defer cancel()

	log.Debug().Str("bucket", bucket).Str("key", key).Msg("Downloading from S3")
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", bucket, key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// PutObject writes the object, overwriting any existing one with the same key.
func (s *S3Store) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(key),
		Body:              bytes.NewReader(data),
		ContentType:       aws.String(contentType),
		ChecksumAlgorithm: s3types.ChecksumAlgorithmSha256,
	})
	if err != nil {
		return fmt.Errorf("S3 PutObject %s/%s: %w", bucket, key, err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("Object uploaded to S3")
	return nil
}

// PresignGet creates a pre-signed GET URL for an object. Used by the CLI to
// hand back a shareable link to the derived object.
func (s *S3Store) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("presign GetObject: %w", err)
	}
	return result.URL, nil
}
