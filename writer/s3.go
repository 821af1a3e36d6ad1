package writer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "gridio/config"
	"gridio/logger"
)

// S3Archiver uploads each assembled day as one parquet object under
// `<domain>/<day>.parquet`. The key is stable so re-running a day
// overwrites the previous archive instead of accumulating copies.
type S3Archiver struct {
	config   *appconfig.Config
	s3Client *s3.Client
	log      *logger.Log
}

// NewS3Archiver configures the AWS SDK and validates that credentials are
// available.
func NewS3Archiver(ctx context.Context, cfg *appconfig.Config) (*S3Archiver, error) {
	log := logger.GetLogger()

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.S3.Region),
	}
	if cfg.Storage.S3.AccessKeyID != "" && cfg.Storage.S3.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Storage.S3.AccessKeyID,
				cfg.Storage.S3.SecretAccessKey,
				"",
			),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	creds, err := awsConfig.Credentials.Retrieve(ctx)
	if err != nil || !creds.HasKeys() {
		return nil, fmt.Errorf("aws credentials not found")
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Storage.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.S3.Endpoint)
		}
		o.UsePathStyle = cfg.Storage.S3.PathStyle
	})

	log.WithComponent("s3_archiver").WithFields(logger.Fields{
		"bucket":     cfg.Storage.S3.Bucket,
		"region":     cfg.Storage.S3.Region,
		"endpoint":   cfg.Storage.S3.Endpoint,
		"path_style": cfg.Storage.S3.PathStyle,
	}).Info("s3 archiver initialized")

	return &S3Archiver{
		config:   cfg,
		s3Client: s3Client,
		log:      log,
	}, nil
}

// ArchiveDay encodes one assembled day table as parquet and uploads it.
func (a *S3Archiver) ArchiveDay(ctx context.Context, day, domain string, header []string, rows [][]string) error {
	log := a.log.WithComponent("s3_archiver").WithFields(logger.Fields{
		"day":    day,
		"domain": domain,
		"rows":   len(rows),
	})

	records := buildArchiveRecords(day, domain, header, rows)
	data, err := encodeParquet(records)
	if err != nil {
		return fmt.Errorf("encode parquet: %w", err)
	}

	key := fmt.Sprintf("%s/%s.parquet", domain, day)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.config.Storage.S3.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"content-type":   "parquet",
			"gridio-version": a.config.Gridio.Version,
		},
	}
	if _, err := a.s3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3 bucket %s: %w", a.config.Storage.S3.Bucket, err)
	}

	log.WithFields(logger.Fields{"s3_key": key, "file_size": len(data)}).Info("day archived to S3")
	return nil
}
