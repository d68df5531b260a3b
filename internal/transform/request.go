package transform

import (
	"errors"
	"fmt"
	"path"
)

// Error kinds for the two failure classes the service distinguishes.
// Both surface as the same 500 envelope; the split exists so handlers can
// tell a bad request from a storage or decode fault in logs, and so input
// failures are guaranteed to happen before any storage call.
var (
	// ErrInput marks a malformed or incomplete request shape.
	ErrInput = errors.New("invalid transform request")
	// ErrProcessing marks a storage read/write or image decode failure.
	ErrProcessing = errors.New("transform processing failed")
)

const (
	// DefaultDimension is the width and height used when a resize request
	// omits them.
	DefaultDimension = 100

	// OutputPrefix is the namespace all derived objects are written under.
	OutputPrefix = "processed/"

	// OutputContentType is the fixed content type of every derived object.
	// All operations re-encode to JPEG regardless of the input format.
	OutputContentType = "image/jpeg"

	// jpegQuality is the fixed encode quality for derived objects.
	jpegQuality = 90
)

// Request is a normalized transformation request. One is built per
// invocation from either a storage notification or an HTTP body; it is
// never persisted or reused.
type Request struct {
	Bucket    string
	Key       string
	Operation Operation
	// Width and Height only apply to resize; zero means "use the default".
	Width  int
	Height int
}

// Validate checks the invariant that bucket and key are present and
// non-empty. Returns an ErrInput-wrapped error otherwise.
func (r Request) Validate() error {
	if r.Bucket == "" || r.Key == "" {
		return fmt.Errorf("%w: bucket and key are required", ErrInput)
	}
	return nil
}

// OutputKey derives the storage key for the transformed object: the final
// path segment of the input key under the processed/ namespace. A prior
// result with the same filename is overwritten.
func (r Request) OutputKey() string {
	return OutputPrefix + path.Base(r.Key)
}

// OutputPath is the full s3:// URI of the derived object, as reported in
// the success response.
func (r Request) OutputPath() string {
	return fmt.Sprintf("s3://%s/%s", r.Bucket, r.OutputKey())
}
