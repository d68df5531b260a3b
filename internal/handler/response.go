package handler

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/DebitoshPanda/image-processing/internal/transform"
)

// jsonHeaders is attached to every envelope. The storage-event path ignores
// the return value, so one response shape serves both trigger paths.
var jsonHeaders = map[string]string{"Content-Type": "application/json"}

type successBody struct {
	Message    string `json:"message"`
	OutputPath string `json:"output_path"`
}

type errorBody struct {
	Error string `json:"error"`
}

// successResponse wraps a completed transform in the 200 envelope.
func successResponse(req transform.Request) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(successBody{
		Message:    fmt.Sprintf("applied %s to s3://%s/%s", req.Operation, req.Bucket, req.Key),
		OutputPath: req.OutputPath(),
	})
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}

// failureResponse wraps any pipeline error in the 500 envelope. Input and
// processing failures are reported identically; the distinction only
// matters for logs.
func failureResponse(err error) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(errorBody{Error: err.Error()})
	return events.APIGatewayProxyResponse{
		StatusCode: 500,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}
