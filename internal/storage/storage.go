// Package storage defines the object-storage capability the transform
// pipeline depends on, and its S3 implementation. The pipeline only ever
// needs get and put; everything else about the bucket (provisioning,
// credentials, notifications) lives outside this process.
package storage

import "context"

// ObjectStore is the narrow storage capability injected into the handler.
type ObjectStore interface {
	// GetObject reads the full object body.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	// PutObject writes the object, overwriting any existing one.
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
