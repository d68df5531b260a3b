// Package lambdaboot provides shared Lambda cold-start bootstrap logic.
//
// Both Lambda entry points need the same subset of: AWS config, the S3
// object store, the optional DynamoDB history store, and startup logging.
// This package extracts the common init patterns so each Lambda's init()
// is a short composition of helpers.
package lambdaboot

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/DebitoshPanda/image-processing/internal/history"
	"github.com/DebitoshPanda/image-processing/internal/logging"
	"github.com/DebitoshPanda/image-processing/internal/storage"
)

// InitAWS loads the default AWS config. Fatals if it cannot be loaded.
func InitAWS() aws.Config {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return cfg
}

// InitS3 creates the S3-backed object store.
func InitS3(cfg aws.Config) *storage.S3Store {
	return storage.NewS3Store(s3.NewFromConfig(cfg))
}

// InitHistoryOptional creates the DynamoDB history store if the table
// environment variable is set. Returns nil (with a warning) if not.
func InitHistoryOptional(cfg aws.Config, tableEnvVar string) *history.Store {
	tableName := os.Getenv(tableEnvVar)
	if tableName == "" {
		log.Warn().Str("envVar", tableEnvVar).Msg("History table not set — transform records disabled")
		return nil
	}
	return history.NewStore(dynamodb.NewFromConfig(cfg), tableName)
}

// StartupLog is a convenience wrapper for the startup logger.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
