package storage

import (
	"fmt"

	"github.com/mlarina/foodgram-backend/config"
)

// ImageStorage persists decoded recipe images and returns the URL where
// they are served from. Remove takes a URL previously returned by Save
// and deletes the backing object.
type ImageStorage interface {
	Save(data []byte, ext string) (string, error)
	Remove(url string) error
}

func New(cfg *config.StorageConfig) (ImageStorage, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	case "s3":
		return NewS3Storage(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
