package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidtube/backend/internal/config"
)

// S3Store talks to any S3-compatible endpoint (R2, minio, AWS itself).
type S3Store struct {
	client       *s3.Client
	presign      *s3.PresignClient
	bucket       string
	publicDomain string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	if cfg.MediaBucket == "" || cfg.MediaAccessKeyID == "" || cfg.MediaSecretAccessKey == "" {
		return nil, fmt.Errorf("missing media storage configuration (MEDIA_BUCKET, MEDIA_ACCESS_KEY_ID, MEDIA_SECRET_ACCESS_KEY)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.MediaAccessKeyID, cfg.MediaSecretAccessKey, ""),
		),
		awsconfig.WithRegion(cfg.MediaRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("media storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.MediaEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:       client,
		presign:      s3.NewPresignClient(client),
		bucket:       cfg.MediaBucket,
		publicDomain: strings.TrimRight(cfg.MediaPublicDomain, "/"),
	}, nil
}

func (s *S3Store) PresignUpload(ctx context.Context, kind Kind, contentType string, expires time.Duration) (*Upload, error) {
	key, err := ObjectKey(kind, contentType)
	if err != nil {
		return nil, err
	}

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	return &Upload{Key: key, URL: req.URL}, nil
}

func (s *S3Store) Delete(ctx context.Context, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return firstErr
}

func (s *S3Store) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", s.publicDomain, s.bucket, key)
}
