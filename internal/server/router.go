package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/handlers"
	"github.com/ngocanhdo/engkids-backend/internal/http/middleware"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *handlers.AuthHandler
	StudentHandler *handlers.StudentHandler
	LessonHandler  *handlers.LessonHandler
	EditorHandler  *handlers.EditorHandler
	ContentHandler *handlers.ContentHandler
	VideoHandler   *handlers.VideoHandler
	GameHandler    *handlers.GameHandler

	AuthMiddleware *middleware.AuthMiddleware

	CORSExtraOrigins string
	// MediaDir, when set, is served at /media (local storage mode).
	MediaDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSExtraOrigins))
	router.Use(otelgin.Middleware("engkids"))

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.GET("/auth/check", cfg.AuthHandler.CheckAuth)
		api.POST("/auth/login", cfg.AuthHandler.LoginEmail)
		api.POST("/auth/login/pin", cfg.AuthHandler.LoginPin)
		api.POST("/auth/login/quick", cfg.AuthHandler.QuickLogin)
		api.POST("/auth/login/demo", cfg.AuthHandler.DemoLogin)
		api.POST("/auth/logout", cfg.AuthHandler.Logout)
	}

	// ===============
	// || Protected ||
	// ===============
	// Any resolved principal, guests included: lesson playback and the
	// content the player needs.
	play := api.Group("/")
	play.Use(cfg.AuthMiddleware.RequireAuth())
	{
		play.GET("/lessons", cfg.LessonHandler.List)
		play.GET("/lessons/:id", cfg.LessonHandler.Get)
		play.GET("/categories", cfg.ContentHandler.ListCategories)
		play.GET("/vocab", cfg.ContentHandler.ListVocab)
		play.GET("/videos", cfg.VideoHandler.List)
		play.GET("/games", cfg.GameHandler.List)
		play.POST("/games/:id/scores", cfg.GameHandler.RecordScore)
	}

	// Lesson editor: teachers and admins.
	editor := api.Group("/editor")
	editor.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole(types.RoleAdmin, types.RoleTeacher))
	{
		editor.POST("/lessons/:id/open", cfg.EditorHandler.Open)
		editor.GET("/sessions/:sid", cfg.EditorHandler.State)
		editor.DELETE("/sessions/:sid", cfg.EditorHandler.Close)
		editor.POST("/sessions/:sid/progress", cfg.EditorHandler.Progress)
		editor.POST("/sessions/:sid/seek", cfg.EditorHandler.Seek)
		editor.POST("/sessions/:sid/resume", cfg.EditorHandler.Resume)
		editor.POST("/sessions/:sid/checkpoints", cfg.EditorHandler.AddCheckpoint)
		editor.POST("/sessions/:sid/checkpoints/:token/edit", cfg.EditorHandler.EditCheckpoint)
		editor.POST("/sessions/:sid/checkpoints/save", cfg.EditorHandler.SaveCheckpoint)
		editor.POST("/sessions/:sid/checkpoints/cancel", cfg.EditorHandler.CancelEdit)
		editor.POST("/sessions/:sid/checkpoints/:token/delete", cfg.EditorHandler.RequestDelete)
		editor.POST("/sessions/:sid/delete/confirm", cfg.EditorHandler.ConfirmDelete)
		editor.POST("/sessions/:sid/delete/cancel", cfg.EditorHandler.CancelDelete)
		editor.POST("/sessions/:sid/info", cfg.EditorHandler.SetInfo)
		editor.POST("/sessions/:sid/meta", cfg.EditorHandler.SetMeta)
		editor.POST("/sessions/:sid/save", cfg.EditorHandler.Save)
	}

	// Admin console: thin CRUD over every entity.
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
	{
		admin.POST("/students", cfg.StudentHandler.Create)
		admin.GET("/students", cfg.StudentHandler.List)
		admin.GET("/students/:id", cfg.StudentHandler.Get)
		admin.PATCH("/students/:id", cfg.StudentHandler.Update)
		admin.DELETE("/students/:id", cfg.StudentHandler.Delete)
		admin.POST("/students/:id/avatar", cfg.StudentHandler.RegenerateAvatar)
		admin.GET("/students/:id/scores", cfg.StudentHandler.ListScores)

		admin.POST("/lessons", cfg.LessonHandler.Create)
		admin.PATCH("/lessons/:id", cfg.LessonHandler.Update)
		admin.DELETE("/lessons/:id", cfg.LessonHandler.Delete)

		admin.POST("/categories", cfg.ContentHandler.CreateCategory)
		admin.PATCH("/categories/:id", cfg.ContentHandler.UpdateCategory)
		admin.DELETE("/categories/:id", cfg.ContentHandler.DeleteCategory)

		admin.POST("/vocab", cfg.ContentHandler.CreateVocab)
		admin.PATCH("/vocab/:id", cfg.ContentHandler.UpdateVocab)
		admin.DELETE("/vocab/:id", cfg.ContentHandler.DeleteVocab)

		admin.POST("/videos", cfg.VideoHandler.Create)
		admin.PATCH("/videos/:id", cfg.VideoHandler.Update)
		admin.DELETE("/videos/:id", cfg.VideoHandler.Delete)

		admin.POST("/games", cfg.GameHandler.Create)
		admin.PATCH("/games/:id", cfg.GameHandler.Update)
		admin.DELETE("/games/:id", cfg.GameHandler.Delete)
	}

	return router
}
