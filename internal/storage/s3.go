package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	appconfig "haggle/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3ImageStore stores advert images in an S3-compatible bucket (MinIO in dev).
type S3ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3ImageStore builds an S3 client from application configuration.
func NewS3ImageStore(ctx context.Context, cfg *appconfig.Config) (*S3ImageStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		// MinIO serves buckets under the path, not a subdomain.
		o.UsePathStyle = true
	})

	return &S3ImageStore{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: cfg.PublicBaseURL(),
	}, nil
}

// randomStorageKey buckets objects by upload date so listing stays cheap.
func randomStorageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("adverts/%d/%d/%d/%v.%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// Store uploads the image bytes and returns its public URL and storage key.
func (s *S3ImageStore) Store(ctx context.Context, data []byte, contentType, ext string) (*StoredImage, error) {
	key := randomStorageKey(ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &StoredImage{
		URL: fmt.Sprintf("%s/%s", s.publicBaseURL, key),
		ID:  key,
	}, nil
}

// Delete removes the object with the given storage key.
func (s *S3ImageStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", id, err)
	}
	return nil
}
