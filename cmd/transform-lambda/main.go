// Package main provides the converged Lambda entry point for image
// transformation. Two trigger paths land here: S3 "object created"
// notifications under the upload prefix, and HTTP POST bodies proxied
// through API Gateway. The handler sniffs the payload shape and runs the
// same pipeline for both.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/DebitoshPanda/image-processing/internal/handler"
	"github.com/DebitoshPanda/image-processing/internal/lambdaboot"
	"github.com/DebitoshPanda/image-processing/internal/logging"
	"github.com/DebitoshPanda/image-processing/internal/transform"
)

// h is the transform pipeline, initialized at cold start.
var h *handler.Handler

var coldStart = true

func init() {
	initStart := time.Now()
	logging.Init()

	cfg := lambdaboot.InitAWS()
	store := lambdaboot.InitS3(cfg)
	hist := lambdaboot.InitHistoryOptional(cfg, "TRANSFORM_TABLE_NAME")
	h = handler.New(store, hist)

	lambdaboot.StartupLog("transform-lambda", initStart).
		S3Bucket("sourceBucket", logging.EnvOrDefault("SOURCE_BUCKET_NAME", "(from request)")).
		DynamoTable("history", os.Getenv("TRANSFORM_TABLE_NAME")).
		Feature("history", hist != nil).
		Config("outputPrefix", transform.OutputPrefix).
		Log()
}

// handle accepts the raw payload so both trigger shapes reach the same
// pipeline. The returned error is always nil: failures are reported through
// the envelope, never as a function error.
func handle(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	if coldStart {
		coldStart = false
		log.Info().Str("function", "transform-lambda").Msg("Cold start — first invocation")
	}
	return h.Handle(ctx, payload), nil
}

func main() {
	lambda.Start(handle)
}
