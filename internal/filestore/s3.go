package filestore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const noSuchKey = "NoSuchKey"

type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL overrides the base of generated file URLs, e.g. a CDN.
	PublicURL string
}

// S3 keeps images in an S3-compatible bucket.
type S3 struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ Store = (*S3)(nil)

// NewS3 connects to the endpoint and creates the bucket if it is missing.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", cfg.Bucket, err)
		}
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = (&url.URL{Scheme: scheme, Host: cfg.Endpoint, Path: "/" + cfg.Bucket}).String()
	}

	return &S3{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (s *S3) WriteRecipeImage(ctx context.Context, suffix, contentType string, data []byte) (string, error) {
	key := recipeImageKey(generateKeyID(), suffix)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("uploading %q: %w", key, err)
	}
	return key, nil
}

func (s *S3) DeleteKey(ctx context.Context, key string) error {
	key = strings.TrimLeft(key, "/")
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return fmt.Errorf("%q: %w", key, ErrNotExist)
		}
		return fmt.Errorf("stat %q: %w", key, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

func (s *S3) FileURL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}
