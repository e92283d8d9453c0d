package filestorage

import (
	"context"
	"fmt"

	"github.com/soundstage/soundstage/internal/modules/filestorage/application"
	"github.com/soundstage/soundstage/internal/modules/filestorage/domain"
	"github.com/soundstage/soundstage/internal/modules/filestorage/infrastructure/local"
	"github.com/soundstage/soundstage/internal/modules/filestorage/infrastructure/s3"
	"github.com/soundstage/soundstage/internal/shared/infrastructure/config"
)

type Module struct {
	service *application.FileService
	storage domain.FileStorage
}

// NewModule picks the storage backend from configuration: S3/MinIO when
// enabled, local filesystem otherwise.
func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	var storage domain.FileStorage
	var err error

	if cfg.UseS3 {
		s3Cfg := s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		}
		storage, err = s3.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	} else {
		storage, err = local.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	return &Module{
		service: application.NewFileService(storage),
		storage: storage,
	}, nil
}

func (m *Module) Service() *application.FileService {
	return m.service
}
