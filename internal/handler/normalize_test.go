package handler

import (
	"errors"
	"testing"

	"github.com/DebitoshPanda/image-processing/internal/transform"
)

const s3EventPayload = `{
  "Records": [
    {
      "eventVersion": "2.1",
      "eventSource": "aws:s3",
      "awsRegion": "us-east-1",
      "eventName": "ObjectCreated:Put",
      "s3": {
        "bucket": {"name": "media-bucket", "arn": "arn:aws:s3:::media-bucket"},
        "object": {"key": "uploads/cat+picture.jpg", "size": 1024}
      }
    }
  ]
}`

func TestNormalize_StorageEvent(t *testing.T) {
	req, err := Normalize([]byte(s3EventPayload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Bucket != "media-bucket" {
		t.Errorf("bucket = %q, want media-bucket", req.Bucket)
	}
	// S3 URL-encodes keys in notifications; the normalizer must decode.
	if req.Key != "uploads/cat picture.jpg" {
		t.Errorf("key = %q, want %q", req.Key, "uploads/cat picture.jpg")
	}
	if req.Operation != transform.OpGrayscale {
		t.Errorf("operation = %s, want grayscale", req.Operation)
	}
}

func TestNormalize_StorageEventIgnoresOperationField(t *testing.T) {
	// Storage-triggered invocations never carry an operation choice, even
	// when a stray field is present in the envelope.
	payload := `{"operation":"resize","Records":[{"s3":{"bucket":{"name":"b"},"object":{"key":"uploads/x.jpg"}}}]}`
	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Operation != transform.OpGrayscale {
		t.Errorf("operation = %s, want grayscale", req.Operation)
	}
}

func TestNormalize_HTTPBody(t *testing.T) {
	payload := `{"bucket":"b","key":"uploads/dog.png","operation":"resize","width":50,"height":75}`
	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Operation != transform.OpResize || req.Width != 50 || req.Height != 75 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestNormalize_HTTPBodyDefaultsOperation(t *testing.T) {
	req, err := Normalize([]byte(`{"bucket":"b","key":"uploads/dog.png"}`))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Operation != transform.OpGrayscale {
		t.Errorf("operation = %s, want grayscale", req.Operation)
	}
}

func TestNormalize_ProxyWrappedBody(t *testing.T) {
	payload := `{"resource":"/api/transform","httpMethod":"POST","body":"{\"bucket\":\"b\",\"key\":\"uploads/x.jpg\",\"operation\":\"sketch\"}"}`
	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Operation != transform.OpSketch || req.Key != "uploads/x.jpg" {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestNormalize_DoubleEncodedBody(t *testing.T) {
	payload := `"{\"bucket\":\"b\",\"key\":\"uploads/x.jpg\"}"`
	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if req.Bucket != "b" || req.Key != "uploads/x.jpg" {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestNormalize_MalformedJSON(t *testing.T) {
	_, err := Normalize([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, transform.ErrInput) {
		t.Errorf("expected ErrInput, got %v", err)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	for _, payload := range []string{
		`{"key":"uploads/x.jpg"}`,
		`{"bucket":"b"}`,
		`{}`,
	} {
		_, err := Normalize([]byte(payload))
		if !errors.Is(err, transform.ErrInput) {
			t.Errorf("payload %s: expected ErrInput, got %v", payload, err)
		}
	}
}
