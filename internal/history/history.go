// Package history persists an audit record per completed transform to
// DynamoDB. Records are write-only from the request path: nothing in the
// pipeline reads them back, so a store failure never fails the invocation.
package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	pkPrefix  = "IMAGE#"
	skPrefix  = "TRANSFORM#"
	recordTTL = 30 * 24 * time.Hour
)

// Record describes one completed transform.
type Record struct {
	ID          string    `dynamodbav:"id"`
	Bucket      string    `dynamodbav:"bucket"`
	Key         string    `dynamodbav:"key"`
	OutputKey   string    `dynamodbav:"outputKey"`
	Operation   string    `dynamodbav:"operation"`
	Width       int       `dynamodbav:"width,omitempty"`
	Height      int       `dynamodbav:"height,omitempty"`
	BytesIn     int       `dynamodbav:"bytesIn"`
	BytesOut    int       `dynamodbav:"bytesOut"`
	DurationMs  int64     `dynamodbav:"durationMs"`
	CameraMake  string    `dynamodbav:"cameraMake,omitempty"`
	CameraModel string    `dynamodbav:"cameraModel,omitempty"`
	TakenAt     time.Time `dynamodbav:"takenAt,unixtime,omitempty"`
	CompletedAt time.Time `dynamodbav:"completedAt,unixtime"`
}

// Store writes transform records to a DynamoDB table using the
// PK/SK single-table layout with a TTL attribute.
type Store struct {
	client    *dynamodb.Client
	tableName string
}

// NewStore creates a Store for the given table. The client should be
// initialized from the shared AWS config.
func NewStore(client *dynamodb.Client, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// imagePK returns the partition key for a source object.
func imagePK(bucket, key string) string {
	return pkPrefix + bucket + "/" + key
}

// RecordTransform writes one record. An empty ID is filled with a fresh UUID.
func (s *Store) RecordTransform(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	pk := imagePK(rec.Bucket, rec.Key)
	sk := skPrefix + rec.ID
	item["PK"] = &types.AttributeValueMemberS{Value: pk}
	item["SK"] = &types.AttributeValueMemberS{Value: sk}
	item["expiresAt"] = &types.AttributeValueMemberN{
		Value: strconv.FormatInt(time.Now().Add(recordTTL).Unix(), 10),
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem PK=%s SK=%s: %w", pk, sk, err)
	}

	log.Debug().
		Str("id", rec.ID).
		Str("operation", rec.Operation).
		Str("outputKey", rec.OutputKey).
		Msg("Transform record written")
	return nil
}
