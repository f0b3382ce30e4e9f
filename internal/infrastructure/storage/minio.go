package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"go.uber.org/zap"
)

// fetchTimeout bounds a single object download so a stalled storage
// backend surfaces as an upstream error instead of hanging the caller.
const fetchTimeout = 30 * time.Second

// ObjectStore fetches template archives from an S3-compatible bucket.
type ObjectStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewObjectStore creates a client for the template bucket.
func NewObjectStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &ObjectStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// FetchObject downloads the raw bytes of one object from the bucket.
func (s *ObjectStore) FetchObject(ctx context.Context, key string) ([]byte, error) {
	opCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	object, err := s.client.GetObject(opCtx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to get object",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return nil, domainErrors.NewUpstreamError("storage", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		s.logger.Error("Failed to read object",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return nil, domainErrors.NewUpstreamError("storage", err)
	}

	return data, nil
}
