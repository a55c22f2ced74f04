// Package storage stores generated report artifacts locally or in object
// storage.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/timing-report/pkg/config"
)

// Storage is the artifact store. Keys are relative paths such as
// "runs/<uuid>/report.csv".
type Storage interface {
	// Upload stores the reader contents under the key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile stores a local file under the key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download returns a reader for the stored artifact.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an artifact is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the URL or path an artifact is reachable at.
	GetURL(key string) string
}

// StorageType represents the type of storage backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeCOS   StorageType = "cos"
)

// NewStorage creates a Storage instance based on the configuration. An
// empty type defaults to local storage.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch StorageType(cfg.Type) {
	case StorageTypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig validates the storage configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return fmt.Errorf("storage config is nil")
	}

	storageType := StorageType(cfg.Type)
	if storageType == "" {
		storageType = StorageTypeLocal
	}

	switch storageType {
	case StorageTypeCOS:
		if cfg.Bucket == "" {
			return fmt.Errorf("COS bucket is required")
		}
		if cfg.Region == "" {
			return fmt.Errorf("COS region is required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return fmt.Errorf("COS credentials are required")
		}
	case StorageTypeLocal:
		if cfg.LocalPath == "" {
			return fmt.Errorf("local storage path is required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	return nil
}
