// Package main provides the HTTP front door for the transformation service.
//
// It exposes the transform pipeline behind API Gateway via the httpadapter
// proxy, keeping the handlers plain net/http so they also run locally.
//
// Endpoints:
//
//	GET  /api/health     — health check
//	POST /api/transform  — {bucket, key, operation?, width?, height?}
package main

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/DebitoshPanda/image-processing/internal/handler"
	"github.com/DebitoshPanda/image-processing/internal/lambdaboot"
	"github.com/DebitoshPanda/image-processing/internal/logging"
)

// maxBodySize caps the request body. Transform requests only name a bucket
// and key; the images themselves never travel through this API.
const maxBodySize = 1 << 20 // 1 MB

var h *handler.Handler

func init() {
	initStart := time.Now()
	logging.Init()

	cfg := lambdaboot.InitAWS()
	store := lambdaboot.InitS3(cfg)
	hist := lambdaboot.InitHistoryOptional(cfg, "TRANSFORM_TABLE_NAME")
	h = handler.New(store, hist)

	lambdaboot.StartupLog("transform-api-lambda", initStart).
		DynamoTable("history", os.Getenv("TRANSFORM_TABLE_NAME")).
		Feature("history", hist != nil).
		Log()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"image-processing"}`))
}

// handleTransform runs the pipeline and relays its envelope as the HTTP
// response. The pipeline never errors out; malformed bodies come back as
// its 500 envelope.
func handleTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read request body")
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	resp := h.Handle(r.Context(), body)
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/transform", handleTransform)

	adapter := httpadapter.NewV2(mux)
	lambda.Start(adapter.ProxyWithContext)
}
