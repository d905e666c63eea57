package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
	"github.com/johnquangdev/transcript-dubber/pkg/config"
	"github.com/johnquangdev/transcript-dubber/pkg/runcontext"
)

// MinIOClient stores pipeline artifacts in an S3 compatible bucket
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL for generating accessible URLs (e.g., https://minio.example.com)
	urlExpiry time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// Ensure MinIOClient implements ArtifactRepository
var _ repositories.ArtifactRepository = (*MinIOClient)(nil)

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		urlExpiry: cfg.URLExpiry,
		logger:    logger,
		now:       time.Now,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket if it doesn't exist. Objects stay private;
// callers only ever get presigned links.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ObjectName builds a collision free key inside folder
func ObjectName(folder, ext string) string {
	return fmt.Sprintf("%s%s.%s", folder, uuid.NewString(), ext)
}

// Persist uploads data under a fresh name in folder and returns a presigned link
func (m *MinIOClient) Persist(ctx context.Context, folder, ext, contentType string, data []byte) (entities.ArtifactRef, error) {
	objectName := ObjectName(folder, ext)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		if m.logger != nil {
			m.logger.Error("failed to upload artifact", append(runcontext.LogFields(ctx),
				zap.String("object_name", objectName),
				zap.Error(err))...)
		}
		return entities.ArtifactRef{}, fmt.Errorf("%w: upload %s: %v", entities.ErrStorageUnavailable, objectName, err)
	}

	url, err := m.GetFileURL(ctx, objectName, m.urlExpiry)
	if err != nil {
		return entities.ArtifactRef{}, fmt.Errorf("%w: %v", entities.ErrStorageUnavailable, err)
	}

	if m.logger != nil {
		m.logger.Info("artifact uploaded", append(runcontext.LogFields(ctx),
			zap.String("object_name", objectName),
			zap.Int("size", len(data)))...)
	}

	return entities.ArtifactRef{
		Key:       objectName,
		URL:       url,
		ExpiresAt: m.now().Add(m.urlExpiry),
	}, nil
}

// Fetch downloads a persisted object
func (m *MinIOClient) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return data, nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// When MinIO sits behind a reverse proxy, swap the internal endpoint
	// for the public one and keep path and signature untouched.
	if m.publicURL != "" {
		return m.publicURL + url.RequestURI(), nil
	}
	return url.String(), nil
}

// Ping checks that the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}
