package repos

import (
	"gorm.io/gorm"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos/auth"
	"github.com/ngocanhdo/engkids-backend/internal/data/repos/content"
	"github.com/ngocanhdo/engkids-backend/internal/data/repos/learning"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type UserRepo = auth.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type StudentRepo = auth.StudentRepo

type LessonRepo = learning.LessonRepo
type LessonVersionRepo = learning.LessonVersionRepo
type CheckpointRepo = learning.CheckpointRepo

type CategoryRepo = content.CategoryRepo
type VocabRepo = content.VocabRepo
type VideoRepo = content.VideoRepo
type GameRepo = content.GameRepo
type GameScoreRepo = content.GameScoreRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return auth.NewUserRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}
func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return auth.NewStudentRepo(db, baseLog)
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewLessonVersionRepo(db *gorm.DB, baseLog *logger.Logger) LessonVersionRepo {
	return learning.NewLessonVersionRepo(db, baseLog)
}
func NewCheckpointRepo(db *gorm.DB, baseLog *logger.Logger) CheckpointRepo {
	return learning.NewCheckpointRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return content.NewCategoryRepo(db, baseLog)
}
func NewVocabRepo(db *gorm.DB, baseLog *logger.Logger) VocabRepo {
	return content.NewVocabRepo(db, baseLog)
}
func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return content.NewVideoRepo(db, baseLog)
}
func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
	return content.NewGameRepo(db, baseLog)
}
func NewGameScoreRepo(db *gorm.DB, baseLog *logger.Logger) GameScoreRepo {
	return content.NewGameScoreRepo(db, baseLog)
}
