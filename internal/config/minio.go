package config

import (
	"os"
	"sync"
)

type MinioConfig struct {
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	UseSSL           bool
	ResumesBucket    string
	ThumbnailsBucket string
}

var (
	minioConfig *MinioConfig
	minioOnce   sync.Once
)

func LoadMinioConfig() *MinioConfig {
	minioOnce.Do(func() {
		resumesBucket := os.Getenv("MINIO_RESUMES_BUCKET")
		if resumesBucket == "" {
			resumesBucket = "talent-discovery-resumes"
		}
		thumbnailsBucket := os.Getenv("MINIO_THUMBNAILS_BUCKET")
		if thumbnailsBucket == "" {
			thumbnailsBucket = "talent-discovery-thumbnails"
		}
		minioConfig = &MinioConfig{
			Endpoint:         os.Getenv("MINIO_ENDPOINT"),
			AccessKeyID:      os.Getenv("MINIO_ACCESS_KEY"),
			SecretAccessKey:  os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:           os.Getenv("MINIO_USE_SSL") == "true",
			ResumesBucket:    resumesBucket,
			ThumbnailsBucket: thumbnailsBucket,
		}
	})
	return minioConfig
}
