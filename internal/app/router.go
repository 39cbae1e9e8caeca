package app

import (
	"github.com/gin-gonic/gin"

	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
	"github.com/ngocanhdo/engkids-backend/internal/platform/media"
	"github.com/ngocanhdo/engkids-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	mediaDir := ""
	if cfg.MediaStorageMode == media.ModeLocal {
		mediaDir = cfg.MediaLocalDir
	}
	return server.NewRouter(server.RouterConfig{
		Log:              log,
		AuthHandler:      h.Auth,
		StudentHandler:   h.Student,
		LessonHandler:    h.Lesson,
		EditorHandler:    h.Editor,
		ContentHandler:   h.Content,
		VideoHandler:     h.Video,
		GameHandler:      h.Game,
		AuthMiddleware:   mw.Auth,
		CORSExtraOrigins: cfg.CORSExtraOrigins,
		MediaDir:         mediaDir,
	})
}
