package handler

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/DebitoshPanda/image-processing/internal/transform"
)

// httpBody is the HTTP-path request shape:
// {bucket, key, operation?, width?, height?}.
type httpBody struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Operation string `json:"operation"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Normalize builds a single transform.Request from either input shape.
//
// Storage-event shape: an S3 notification envelope. Only the first record is
// consulted, and the operation is always grayscale — storage-triggered
// invocations never carry an operation choice.
//
// HTTP shape: a JSON body, possibly wrapped in an API Gateway proxy envelope
// whose "body" field is the serialized request, and possibly double-encoded
// as a JSON string. Operation defaults to grayscale when absent.
//
// Anything else is an ErrInput before any storage call happens.
func Normalize(payload []byte) (transform.Request, error) {
	var s3ev events.S3Event
	if err := json.Unmarshal(payload, &s3ev); err == nil && len(s3ev.Records) > 0 {
		rec := s3ev.Records[0]
		// S3 URL-encodes object keys in notifications; prefer the decoded form.
		key := rec.S3.Object.URLDecodedKey
		if key == "" {
			key = rec.S3.Object.Key
		}
		req := transform.Request{
			Bucket:    rec.S3.Bucket.Name,
			Key:       key,
			Operation: transform.OpGrayscale,
		}
		if err := req.Validate(); err != nil {
			return transform.Request{}, fmt.Errorf("storage event record: %w", err)
		}
		return req, nil
	}

	body := payload

	// API Gateway proxy envelope: the request body rides in the "body" field.
	var proxy struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(payload, &proxy); err == nil && proxy.Body != "" {
		body = []byte(proxy.Body)
	}

	// Double-encoded body: a JSON string holding the serialized request.
	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		body = []byte(inner)
	}

	var hb httpBody
	if err := json.Unmarshal(body, &hb); err != nil {
		return transform.Request{}, fmt.Errorf("%w: unrecognized request shape: %v", transform.ErrInput, err)
	}

	req := transform.Request{
		Bucket:    hb.Bucket,
		Key:       hb.Key,
		Operation: transform.ParseOperation(hb.Operation),
		Width:     hb.Width,
		Height:    hb.Height,
	}
	if err := req.Validate(); err != nil {
		return transform.Request{}, err
	}
	return req, nil
}
