package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"yatube/app/apperrors"
	"yatube/app/models"
)

// MaxImageSize caps an uploaded image.
const MaxImageSize = 10 << 20

// LocalConfig holds configuration for local storage.
type LocalConfig struct {
	Root string `mapstructure:"root"`
}

// ImageStore keeps post images on the local filesystem under the posts/
// prefix of the media root.
type ImageStore struct {
	root string
}

// NewImageStore creates the media root if needed.
func NewImageStore(cfg LocalConfig) (*ImageStore, error) {
	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return &ImageStore{root: abs}, nil
}

// Root returns the absolute media root.
func (s *ImageStore) Root() string {
	return s.root
}

// fullPath resolves key inside the root, rejecting keys that escape it.
func (s *ImageStore) fullPath(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q: %w", key, apperrors.ErrResourceNotFound)
	}
	return filepath.Join(s.root, clean), nil
}

// SaveImage sniffs r, rejects anything that is not an image and writes it
// under a fresh posts/<uuid><ext> key, which is returned.
func (s *ImageStore) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", apperrors.NewFieldError("image", "file is too large")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", apperrors.NewFieldError("image", apperrors.ErrInvalidImage.Error())
	}

	key := models.ImagePrefix + uuid.NewString() + mime.Extension()
	if err := s.write(ctx, key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}

func (s *ImageStore) write(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.fullPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Open returns the stored file for key.
func (s *ImageStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewResourceNotFoundError("file not found: " + key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes key; a missing file is not an error.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	path, err := s.fullPath(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
