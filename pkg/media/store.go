package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists binary media and returns the URL it is served under.
type Store interface {
	Save(ctx context.Context, prefix string, data []byte, mimeType string) (string, error)
}

// DiskStore writes files below dir and builds URLs from baseURL, e.g. /media/generated/<id>.png.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) BaseURL() string { return s.baseURL }

func (s *DiskStore) Save(ctx context.Context, prefix string, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prefix = strings.Trim(filepath.ToSlash(filepath.Clean("/"+prefix)), "/")
	name := uuid.NewString() + Extension(mimeType)
	target := filepath.Join(s.dir, filepath.FromSlash(prefix))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create media prefix: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	return s.baseURL + "/" + path.Join(prefix, name), nil
}

// Extension maps a MIME type to a file extension.
func Extension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ".bin"
	}
}
