package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// localStore writes media under a directory served by the HTTP layer at
// /media. Default for development and for single-host deployments.
type localStore struct {
	log     *logger.Logger
	baseDir string
	baseURL string
}

func newLocalStore(log *logger.Logger) (Store, error) {
	baseDir := envutil.GetEnv("MEDIA_LOCAL_DIR", "./media", log)
	baseURL := strings.TrimRight(envutil.GetEnv("MEDIA_LOCAL_BASE_URL", "/media", log), "/")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &localStore{
		log:     log.With("store", "LocalMediaStore"),
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

func (s *localStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	key = cleanKey(key)
	if key == "" {
		return fmt.Errorf("empty media key")
	}
	dst := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create media subdir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	key = cleanKey(key)
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *localStore) PublicURL(key string) string {
	key = cleanKey(key)
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + key
}

// cleanKey rejects path escapes; keys always stay below the store root.
func cleanKey(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return ""
	}
	return key
}
