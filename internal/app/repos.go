package app

import (
	"gorm.io/gorm"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Student   repos.StudentRepo

	Lesson        repos.LessonRepo
	LessonVersion repos.LessonVersionRepo
	Checkpoint    repos.CheckpointRepo

	Category  repos.CategoryRepo
	Vocab     repos.VocabRepo
	Video     repos.VideoRepo
	Game      repos.GameRepo
	GameScore repos.GameScoreRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Student:   repos.NewStudentRepo(db, log),

		Lesson:        repos.NewLessonRepo(db, log),
		LessonVersion: repos.NewLessonVersionRepo(db, log),
		Checkpoint:    repos.NewCheckpointRepo(db, log),

		Category:  repos.NewCategoryRepo(db, log),
		Vocab:     repos.NewVocabRepo(db, log),
		Video:     repos.NewVideoRepo(db, log),
		Game:      repos.NewGameRepo(db, log),
		GameScore: repos.NewGameScoreRepo(db, log),
	}
}
