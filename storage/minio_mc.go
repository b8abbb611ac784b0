package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fevertracker/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveIDMeta is the user metadata key carrying the id of one archive run.
const ArchiveIDMeta = "Archive-Id"

// Uploader is the subset of the MinIO API the archive needs.
type Uploader interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioClient 封装了 MinIO 客户端
type MinioClient struct {
	client     Uploader
	bucketName string
	region     string
}

// NewMinioClient 创建一个新的 MinIO 客户端
func NewMinioClient(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*MinioClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("MinIO endpoint is not configured")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return newMinioClient(client, bucketName, region), nil
}

func newMinioClient(client Uploader, bucketName, region string) *MinioClient {
	return &MinioClient{client: client, bucketName: bucketName, region: region}
}

// EnsureBucket creates the bucket if it does not exist.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.bucketName, err)
	}
	logger.Info("bucket created", logger.String("bucket", m.bucketName))
	return nil
}

// ObjectKey is the key of a local file under prefix.
func ObjectKey(prefix, file string) string {
	return path.Join(strings.Trim(prefix, "/"), filepath.Base(file))
}

// ContentType maps archived file suffixes to MIME types.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// UploadFile uploads the file at localPath under key.
func (m *MinioClient) UploadFile(ctx context.Context, key, localPath, archiveID string) error {
	_, err := m.client.FPutObject(ctx, m.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType:  ContentType(localPath),
		UserMetadata: map[string]string{ArchiveIDMeta: archiveID},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	return nil
}

// ArchiveDirs uploads every regular file of dirs under prefix and returns
// how many files were uploaded. All uploads of one call share an archive id.
func (m *MinioClient) ArchiveDirs(ctx context.Context, prefix string, dirs ...string) (int, error) {
	if err := m.EnsureBucket(ctx); err != nil {
		return 0, err
	}
	archiveID := uuid.New().String()
	count := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return count, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			local := filepath.Join(dir, e.Name())
			key := ObjectKey(prefix, local)
			if err := m.UploadFile(ctx, key, local, archiveID); err != nil {
				return count, err
			}
			logger.Debug("file archived", logger.String("key", key))
			count++
		}
	}
	logger.Info("archive finished",
		logger.String("bucket", m.bucketName),
		logger.String("archive_id", archiveID),
		logger.Int("files", count))
	return count, nil
}
