package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// Store is where generated and uploaded media (student avatars, vocab images,
// audio clips) ends up. Keys are slash-separated paths relative to the store
// root; PublicURL must return something a browser can fetch directly.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

const (
	ModeLocal = "local"
	ModeGCS   = "gcs"
)

func NewStore(ctx context.Context, log *logger.Logger) (Store, error) {
	mode := strings.ToLower(envutil.GetEnv("MEDIA_STORAGE_MODE", ModeLocal, log))
	switch mode {
	case ModeLocal:
		return newLocalStore(log)
	case ModeGCS:
		return newGCSStore(ctx, log)
	default:
		return nil, fmt.Errorf("unknown MEDIA_STORAGE_MODE: %q", mode)
	}
}
