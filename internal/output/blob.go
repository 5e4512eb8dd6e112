package output

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"liveshellwave/internal/config"
	"liveshellwave/internal/encoder"
)

type PutOptions struct {
	Size        int64
	ContentType string
}

// BlobStorage is the subset of an object store the exporter needs
type BlobStorage interface {
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error
	Location(key string) string
}

// MinioStorage stores objects in an S3 compatible bucket
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage creates a client for the configured endpoint
func NewMinioStorage(cfg *config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the bucket unless it already exists
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil {
		// If the bucket is already owned, succeed
		if minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return err
	}
	return nil
}

var _ BlobStorage = (*MinioStorage)(nil)

func (s *MinioStorage) Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, data, opts.Size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	return err
}

// Location returns the s3:// url of a key
func (s *MinioStorage) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

// BlobExporter uploads WAV files to object storage
type BlobExporter struct {
	storage BlobStorage
	logger  *logrus.Logger
}

// NewBlobExporter creates a new object storage exporter
func NewBlobExporter(storage BlobStorage, logger *logrus.Logger) *BlobExporter {
	return &BlobExporter{storage: storage, logger: logger}
}

// Export uploads the signal under key name
func (e *BlobExporter) Export(ctx context.Context, signal *encoder.Signal, name string) (string, error) {
	location := e.storage.Location(name)
	data := signal.WAV()

	err := e.storage.Put(ctx, name, bytes.NewReader(data), PutOptions{
		Size:        int64(len(data)),
		ContentType: ContentType,
	})
	if err != nil {
		return "", newExportError(location, err)
	}

	e.logger.WithFields(logrus.Fields{
		"location": location,
		"bytes":    len(data),
	}).Info("Uploaded WAV file")

	return location, nil
}

var _ Exporter = (*BlobExporter)(nil)
