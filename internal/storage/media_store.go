package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/barbera-app/barbera-api/internal/config"
)

// MediaStore writes avatar and portfolio objects to an S3-compatible
// bucket. Puts are create-only (If-None-Match: *) so a key collision
// surfaces as an error instead of silently overwriting someone's media.
type MediaStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewMediaStore(cfg *config.Config) *MediaStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	baseURL := strings.TrimSuffix(cfg.MediaBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &MediaStore{
		client:  s3.New(opts),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
}

func (s *MediaStore) Put(
	ctx context.Context,
	key string,
	contentType string,
	data []byte,
) (string, error) {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return "", err
	}

	return s.baseURL + "/" + key, nil
}

// PutRetrying retries exactly once, under a random-suffixed key, when the
// first put hits the "resource already exists" collision class. Any other
// failure propagates as-is.
func (s *MediaStore) PutRetrying(
	ctx context.Context,
	key string,
	contentType string,
	data []byte,
) (string, error) {

	url, err := s.Put(ctx, key, contentType, data)
	if err == nil {
		return url, nil
	}
	if !IsAlreadyExists(err) {
		return "", err
	}

	return s.Put(ctx, suffixedKey(key), contentType, data)
}

func (s *MediaStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL maps a stored object URL back to its bucket key. Returns
// false for URLs that do not belong to this store.
func (s *MediaStore) KeyFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// IsAlreadyExists matches the create-only put rejection (HTTP 412 on
// If-None-Match: *).
func IsAlreadyExists(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

func suffixedKey(key string) string {
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s%s", base, suffix, ext)
}
