package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"go.uber.org/zap"
)

// MinioStore backs card attachments with a MinIO (or S3-compatible) bucket.
// Clients upload directly via presigned PUT URLs; the API only handles keys.
type MinioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger *zap.Logger
}

var _ services.ObjectStore = (*MinioStore)(nil)

// NewMinioStore connects to the configured endpoint and ensures the bucket
// exists.
func NewMinioStore(cfg *config.Config, logger *zap.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	store := &MinioStore{
		client: client,
		bucket: cfg.MinioBucket,
		expiry: time.Duration(cfg.PresignExpiry) * time.Second,
		logger: logger,
	}

	if err := store.ensureBucket(); err != nil {
		return nil, err
	}

	return store, nil
}

func (m *MinioStore) ensureBucket() error {
	ctx := context.Background()

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		m.logger.Info("created attachment bucket", zap.String("bucket", m.bucket))
	}
	return nil
}

// PresignUpload returns a short-lived PUT URL under a fresh object key. The
// key embeds a date prefix and a random component so concurrent uploads of
// the same filename never collide.
func (m *MinioStore) PresignUpload(ctx context.Context, filename, contentType string) (*services.PresignedUpload, error) {
	key := objectKey(filename)

	url, err := m.client.PresignedPutObject(ctx, m.bucket, key, m.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign put: %w", err)
	}

	m.logger.Debug("presigned upload",
		zap.String("key", key),
		zap.String("content_type", contentType),
	)

	return &services.PresignedUpload{
		UploadURL: url.String(),
		Key:       key,
		ExpiresIn: m.expiry,
	}, nil
}

// RemoveObject deletes a stored object by key.
func (m *MinioStore) RemoveObject(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

func objectKey(filename string) string {
	date := time.Now().UTC().Format("2006/01/02")
	return fmt.Sprintf("%s/%s%s", date, utils.NewID(utils.PrefixAttachment), filepath.Ext(filename))
}
