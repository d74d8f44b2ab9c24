// Package local stores crop images on the local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/imagestore"
)

type LocalImageStore struct {
	basePath string
}

func New(basePath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &LocalImageStore{basePath: basePath}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	key := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), extForMIME(mimeType))
	path := filepath.Join(s.basePath, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		s.discard(f, path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(path); rerr != nil {
			slog.Error("failed to remove image after close error", "error", rerr)
		}
		return "", fmt.Errorf("close image file: %w", err)
	}
	return key, nil
}

func (s *LocalImageStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", imagestore.ErrNotFound
		}
		return nil, "", fmt.Errorf("open image file: %w", err)
	}
	return f, mimeForExt(path), nil
}

func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return imagestore.ErrNotFound
		}
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

func (s *LocalImageStore) discard(f *os.File, path string) {
	if err := f.Close(); err != nil {
		slog.Error("failed to close image after write error", "error", err)
	}
	if err := os.Remove(path); err != nil {
		slog.Error("failed to remove image after write error", "error", err)
	}
}

// resolve maps key onto basePath and rejects directory traversal.
func (s *LocalImageStore) resolve(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid image key: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid image key: %q", key)
	}
	return absPath, nil
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func mimeForExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
