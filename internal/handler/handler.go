// Package handler wires the transform pipeline: normalize the incoming
// payload, fetch the source object, apply the filter, write the derived
// object, and wrap the outcome in a uniform response envelope. Every
// failure anywhere in the pipeline is converted to the 500 envelope here;
// nothing propagates to the invoker.
package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/DebitoshPanda/image-processing/internal/history"
	"github.com/DebitoshPanda/image-processing/internal/metrics"
	"github.com/DebitoshPanda/image-processing/internal/storage"
	"github.com/DebitoshPanda/image-processing/internal/transform"
)

// metricsNamespace is the CloudWatch namespace for transform metrics.
const metricsNamespace = "ImageTransform"

// Handler runs the transform pipeline against an injected object store.
type Handler struct {
	store   storage.ObjectStore
	history *history.Store // nil disables history records
}

// New creates a Handler. Pass a nil history store to disable audit records.
func New(store storage.ObjectStore, hist *history.Store) *Handler {
	return &Handler{store: store, history: hist}
}

// Handle processes one invocation payload (either trigger shape) and always
// returns an envelope — never an error to the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, payload []byte) (resp events.APIGatewayProxyResponse) {
	start := time.Now()
	rec := metrics.New(metricsNamespace)
	defer rec.Flush()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Transform pipeline panicked")
			rec.Count("Failure")
			resp = failureResponse(fmt.Errorf("internal error: %v", r))
		}
	}()

	req, err := Normalize(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected transform request")
		rec.Count("InputError")
		return failureResponse(err)
	}

	logger := log.With().
		Str("bucket", req.Bucket).
		Str("key", req.Key).
		Str("operation", req.Operation.String()).
		Logger()
	logger.Info().Msg("Processing transform request")
	rec.Dimension("Operation", req.Operation.String())
	rec.Property("key", req.Key)

	data, err := h.store.GetObject(ctx, req.Bucket, req.Key)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read source object")
		rec.Count("Failure")
		return failureResponse(fmt.Errorf("%w: %v", transform.ErrProcessing, err))
	}

	out, err := transform.Apply(data, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to transform image")
		rec.Count("Failure")
		return failureResponse(err)
	}

	outputKey := req.OutputKey()
	if err := h.store.PutObject(ctx, req.Bucket, outputKey, out, transform.OutputContentType); err != nil {
		logger.Error().Err(err).Str("outputKey", outputKey).Msg("Failed to write derived object")
		rec.Count("Failure")
		return failureResponse(fmt.Errorf("%w: %v", transform.ErrProcessing, err))
	}

	duration := time.Since(start)
	h.recordHistory(ctx, req, data, out, duration)

	rec.Metric("DurationMs", float64(duration.Milliseconds()), metrics.UnitMilliseconds)
	rec.Metric("BytesIn", float64(len(data)), metrics.UnitBytes)
	rec.Metric("BytesOut", float64(len(out)), metrics.UnitBytes)
	rec.Count("Success")

	logger.Info().
		Str("outputKey", outputKey).
		Dur("duration", duration).
		Msg("Transform complete")

	return successResponse(req)
}

// recordHistory writes the audit record for a completed transform.
// Best effort: a store failure is logged, never surfaced to the caller.
func (h *Handler) recordHistory(ctx context.Context, req transform.Request, in, out []byte, duration time.Duration) {
	if h.history == nil {
		return
	}

	meta := history.ExtractMeta(in)
	err := h.history.RecordTransform(ctx, history.Record{
		Bucket:      req.Bucket,
		Key:         req.Key,
		OutputKey:   req.OutputKey(),
		Operation:   req.Operation.String(),
		Width:       req.Width,
		Height:      req.Height,
		BytesIn:     len(in),
		BytesOut:    len(out),
		DurationMs:  duration.Milliseconds(),
		CameraMake:  meta.CameraMake,
		CameraModel: meta.CameraModel,
		TakenAt:     meta.TakenAt,
	})
	if err != nil {
		log.Warn().Err(err).Str("key", req.Key).Msg("Failed to write transform history record")
	}
}
