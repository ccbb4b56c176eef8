package services

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportArchive keeps a copy of every generated workbook.
type ExportArchive interface {
	Archive(ctx context.Context, key string, data []byte) error
}

type S3ExportArchiveConfig struct {
	Bucket   string
	Region   string
	Endpoint string
}

// S3ExportArchive stores workbooks in one bucket under the exports/ prefix.
type S3ExportArchive struct {
	client *s3.Client
	bucket string
}

// NewS3ExportArchive builds a client from the default AWS credential chain. A custom
// endpoint switches to path-style addressing for S3-compatible stores.
func NewS3ExportArchive(ctx context.Context, cfg S3ExportArchiveConfig) (*S3ExportArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3ExportArchive{client: client, bucket: cfg.Bucket}, nil
}

// Archive uploads data unless an object with the same key already exists.
func (a *S3ExportArchive) Archive(ctx context.Context, key string, data []byte) error {
	key = "exports/" + key
	if _, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &a.bucket, Key: &key}); err == nil {
		log.Printf("[EXPORT_ARCHIVE] %s already archived, skipping", key)
		return nil
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xlsxContentType),
	})
	if err != nil {
		return fmt.Errorf("archive %s: %w", key, err)
	}
	log.Printf("[EXPORT_ARCHIVE] Stored s3://%s/%s (%d bytes)", a.bucket, key, len(data))
	return nil
}
