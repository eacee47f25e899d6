package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fadilmartias/talent-discovery/internal/config"
	"github.com/fadilmartias/talent-discovery/internal/logger"
)

// ObjectStorageInterface is the object-store capability the pipeline consumes:
// raw resume files and thumbnails go into separate buckets, folder removal
// sweeps both prefixes.
type ObjectStorageInterface interface {
	UploadResume(ctx context.Context, folderID, hash string, data []byte) (string, error)
	UploadThumbnail(ctx context.Context, folderID, hash string, data []byte) (string, error)
	PresignedResumeURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
	RemoveUploads(ctx context.Context, folderID, hash string)
	RemoveFolderObjects(ctx context.Context, folderID string) error
}

type MinioStorage struct {
	client           *minio.Client
	resumesBucket    string
	thumbnailsBucket string
	endpoint         string
	useSSL           bool
}

func NewMinioStorage(ctx context.Context) (*MinioStorage, error) {
	cfg := config.LoadMinioConfig()
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinioStorage{
		client:           client,
		resumesBucket:    cfg.ResumesBucket,
		thumbnailsBucket: cfg.ThumbnailsBucket,
		endpoint:         cfg.Endpoint,
		useSSL:           cfg.UseSSL,
	}

	for _, bucket := range []string{s.resumesBucket, s.thumbnailsBucket} {
		if err := s.ensureBucketExists(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MinioStorage) ensureBucketExists(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info().Str("bucket", bucket).Msg("created bucket")
	}
	return nil
}

// UploadResume stores the raw PDF and returns its object path.
func (s *MinioStorage) UploadResume(ctx context.Context, folderID, hash string, data []byte) (string, error) {
	objectPath := resumeObjectPath(folderID, hash)
	_, err := s.client.PutObject(ctx, s.resumesBucket, objectPath,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume file: %w", err)
	}
	return objectPath, nil
}

// UploadThumbnail stores the first-page PNG and returns its public URL.
func (s *MinioStorage) UploadThumbnail(ctx context.Context, folderID, hash string, data []byte) (string, error) {
	objectPath := thumbnailObjectPath(folderID, hash)
	_, err := s.client.PutObject(ctx, s.thumbnailsBucket, objectPath,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/png"})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	return s.publicURL(s.thumbnailsBucket, objectPath), nil
}

// PresignedResumeURL returns a time-limited download link for a stored resume.
func (s *MinioStorage) PresignedResumeURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.resumesBucket, objectPath, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectPath, err)
	}
	return u.String(), nil
}

// RemoveUploads is the compensating action when the record store rejects an
// ingestion after the objects were already uploaded. Best effort only.
func (s *MinioStorage) RemoveUploads(ctx context.Context, folderID, hash string) {
	if err := s.client.RemoveObject(ctx, s.resumesBucket, resumeObjectPath(folderID, hash), minio.RemoveObjectOptions{}); err != nil {
		logger.Warn().Err(err).Str("hash", hash).Msg("failed to remove uploaded resume file")
	}
	if err := s.client.RemoveObject(ctx, s.thumbnailsBucket, thumbnailObjectPath(folderID, hash), minio.RemoveObjectOptions{}); err != nil {
		logger.Warn().Err(err).Str("hash", hash).Msg("failed to remove uploaded thumbnail")
	}
}

// RemoveFolderObjects deletes every object under the folder prefix in both
// buckets. Used by folder removal.
func (s *MinioStorage) RemoveFolderObjects(ctx context.Context, folderID string) error {
	prefix := fmt.Sprintf("folder_%s/", folderID)
	for _, bucket := range []string{s.resumesBucket, s.thumbnailsBucket} {
		for object := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if object.Err != nil {
				return fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, object.Err)
			}
			if err := s.client.RemoveObject(ctx, bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
				return fmt.Errorf("failed to remove %s/%s: %w", bucket, object.Key, err)
			}
		}
	}
	return nil
}

func (s *MinioStorage) publicURL(bucket, objectPath string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucket, objectPath)
}

func resumeObjectPath(folderID, hash string) string {
	return fmt.Sprintf("folder_%s/resume_%s.pdf", folderID, hash)
}

func thumbnailObjectPath(folderID, hash string) string {
	return fmt.Sprintf("folder_%s/thumbnail_%s.png", folderID, hash)
}
