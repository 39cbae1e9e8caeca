package app

import (
	"context"

	"gorm.io/gorm"

	redisclient "github.com/ngocanhdo/engkids-backend/internal/clients/redis"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
	"github.com/ngocanhdo/engkids-backend/internal/platform/media"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type Services struct {
	Avatar  services.AvatarService
	Auth    services.AuthService
	Lesson  services.LessonService
	Editor  services.EditorService
	Content services.ContentService
	Student services.StudentService
}

func wireServices(
	ctx context.Context,
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	r Repos,
	sessions redisclient.SessionStore,
) (Services, media.Store, error) {
	store, err := media.NewStore(ctx, log)
	if err != nil {
		return Services{}, nil, err
	}

	avatarService := services.NewAvatarService(log, store)
	authService := services.NewAuthService(
		db, log,
		r.User, r.UserToken, r.Student,
		sessions, avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	lessonService := services.NewLessonService(db, log, r.Lesson, r.LessonVersion, r.Checkpoint, r.Vocab, r.Category)
	editorService := services.NewEditorService(log, lessonService, cfg.CheckpointToleranceSec, cfg.EnforceCheckpointBounds)
	contentService := services.NewContentService(db, log, r.Category, r.Vocab, r.Video, r.Game, r.GameScore, r.Student)
	studentService := services.NewStudentService(db, log, r.Student, avatarService)

	return Services{
		Avatar:  avatarService,
		Auth:    authService,
		Lesson:  lessonService,
		Editor:  editorService,
		Content: contentService,
		Student: studentService,
	}, store, nil
}
