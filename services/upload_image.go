package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3ImageStorage stores uploaded project images in an S3 bucket and hands
// back a durable public URL. The API layer persists only that URL.
type S3ImageStorage struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// S3Config carries the settings needed to reach the bucket. AccessKey and
// SecretKey are optional; when empty the default AWS credential chain is used.
type S3Config struct {
	Bucket    string
	Region    string
	BaseURL   string
	AccessKey string
	SecretKey string
}

func NewS3ImageStorage(ctx context.Context, cfg S3Config) (*S3ImageStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStorage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Upload writes the image body to the bucket under a fresh key and returns
// the object's public URL.
func (s *S3ImageStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := "projects/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
