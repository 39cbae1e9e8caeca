package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type gcsStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

func newGCSStore(ctx context.Context, log *logger.Logger) (Store, error) {
	bucket := envutil.GetEnv("MEDIA_GCS_BUCKET", "", log)
	if bucket == "" {
		return nil, fmt.Errorf("missing MEDIA_GCS_BUCKET")
	}
	var opts []option.ClientOption
	if creds := envutil.GetEnv("MEDIA_GCS_CREDENTIALS", "", log); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &gcsStore{
		log:    log.With("store", "GCSMediaStore"),
		client: client,
		bucket: bucket,
	}, nil
}

func (s *gcsStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	key = cleanKey(key)
	if key == "" {
		return fmt.Errorf("empty media key")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if strings.TrimSpace(contentType) != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	key = cleanKey(key)
	if key == "" {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

func (s *gcsStore) PublicURL(key string) string {
	key = cleanKey(key)
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
