package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/modules/filestorage/domain"
)

var ErrMissingFile = errors.New("no file in request")

// FileService provides high-level file operations on top of a FileStorage.
type FileService struct {
	storage domain.FileStorage
}

func NewFileService(storage domain.FileStorage) *FileService {
	return &FileService{storage: storage}
}

// UploadImage pulls the image out of the multipart form, downscales it to
// fit maxDim and stores it as JPEG under folder. Returns the public URL.
func (s *FileService) UploadImage(ctx context.Context, r *http.Request, formKey, folder string, maxDim int) (string, error) {
	file, _, err := r.FormFile(formKey)
	if err != nil {
		return "", ErrMissingFile
	}
	defer file.Close()

	src, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("image decode error: %w", err)
	}
	dst := imaging.Fit(src, maxDim, maxDim, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("image encode error: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
	return s.storage.UploadFile(ctx, key, buf, "image/jpeg")
}

// Upload stores a file under folder with a generated name derived from the
// original extension.
func (s *FileService) Upload(ctx context.Context, file io.Reader, originalName, folder, contentType string) (string, string, error) {
	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	url, err := s.storage.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

func (s *FileService) GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.storage.GetPresignedURL(ctx, key, expiration)
}

func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.storage.DeleteFile(ctx, key)
}

func (s *FileService) GetKeyFromURL(fileURL string) (string, error) {
	return s.storage.GetKeyFromURL(fileURL)
}
