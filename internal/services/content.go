package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// ContentService is the thin CRUD layer behind the admin console:
// vocabulary, categories, videos, mini-games and game scores. One form, one
// table, no versioning.
type ContentService interface {
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	ListCategories(ctx context.Context) ([]*types.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateVocab(ctx context.Context, v *types.VocabItem) (*types.VocabItem, error)
	ListVocab(ctx context.Context, categoryID *uuid.UUID) ([]*types.VocabItem, error)
	UpdateVocab(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteVocab(ctx context.Context, id uuid.UUID) error

	CreateVideo(ctx context.Context, v *types.Video) (*types.Video, error)
	ListVideos(ctx context.Context) ([]*types.Video, error)
	UpdateVideo(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error

	CreateGame(ctx context.Context, g *types.Game) (*types.Game, error)
	ListGames(ctx context.Context) ([]*types.Game, error)
	UpdateGame(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteGame(ctx context.Context, id uuid.UUID) error

	RecordScore(ctx context.Context, score *types.GameScore) (*types.GameScore, error)
	ListScoresByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.GameScore, error)
}

type contentService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	vocabRepo    repos.VocabRepo
	videoRepo    repos.VideoRepo
	gameRepo     repos.GameRepo
	scoreRepo    repos.GameScoreRepo
	studentRepo  repos.StudentRepo
}

func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	categoryRepo repos.CategoryRepo,
	vocabRepo repos.VocabRepo,
	videoRepo repos.VideoRepo,
	gameRepo repos.GameRepo,
	scoreRepo repos.GameScoreRepo,
	studentRepo repos.StudentRepo,
) ContentService {
	return &contentService{
		db:           db,
		log:          baseLog.With("service", "ContentService"),
		categoryRepo: categoryRepo,
		vocabRepo:    vocabRepo,
		videoRepo:    videoRepo,
		gameRepo:     gameRepo,
		scoreRepo:    scoreRepo,
		studentRepo:  studentRepo,
	}
}

func (s *contentService) internalErr(op string, err error) error {
	s.log.Error(op+" failed", "error", err)
	return apierr.Internal(errors.New(MsgGenericRetry))
}

func (s *contentService) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil, apierr.Validation("Tên chủ đề không được để trống")
	}
	c.ID = uuid.New()
	c.Name = strings.TrimSpace(c.Name)
	if _, err := s.categoryRepo.Create(ctx, nil, []*types.Category{c}); err != nil {
		return nil, s.internalErr("category create", err)
	}
	return c, nil
}

func (s *contentService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	cats, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, s.internalErr("category list", err)
	}
	return cats, nil
}

func (s *contentService) UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if err := s.categoryRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return s.internalErr("category update", err)
	}
	return nil
}

func (s *contentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return s.internalErr("category delete", err)
	}
	return nil
}

func (s *contentService) CreateVocab(ctx context.Context, v *types.VocabItem) (*types.VocabItem, error) {
	if v == nil || strings.TrimSpace(v.Word) == "" {
		return nil, apierr.Validation("Từ vựng không được để trống")
	}
	if strings.TrimSpace(v.Meaning) == "" {
		return nil, apierr.Validation("Nghĩa của từ không được để trống")
	}
	v.ID = uuid.New()
	v.Word = strings.TrimSpace(v.Word)
	v.Meaning = strings.TrimSpace(v.Meaning)
	if _, err := s.vocabRepo.Create(ctx, nil, []*types.VocabItem{v}); err != nil {
		return nil, s.internalErr("vocab create", err)
	}
	return v, nil
}

func (s *contentService) ListVocab(ctx context.Context, categoryID *uuid.UUID) ([]*types.VocabItem, error) {
	if categoryID != nil {
		items, err := s.vocabRepo.GetByCategoryIDs(ctx, nil, []uuid.UUID{*categoryID})
		if err != nil {
			return nil, s.internalErr("vocab list by category", err)
		}
		return items, nil
	}
	items, err := s.vocabRepo.List(ctx, nil)
	if err != nil {
		return nil, s.internalErr("vocab list", err)
	}
	return items, nil
}

func (s *contentService) UpdateVocab(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if err := s.vocabRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return s.internalErr("vocab update", err)
	}
	return nil
}

func (s *contentService) DeleteVocab(ctx context.Context, id uuid.UUID) error {
	if err := s.vocabRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return s.internalErr("vocab delete", err)
	}
	return nil
}

func (s *contentService) CreateVideo(ctx context.Context, v *types.Video) (*types.Video, error) {
	if v == nil || strings.TrimSpace(v.Title) == "" {
		return nil, apierr.Validation("Tên video không được để trống")
	}
	if strings.TrimSpace(v.URL) == "" {
		return nil, apierr.Validation("Đường dẫn video không được để trống")
	}
	v.ID = uuid.New()
	v.Title = strings.TrimSpace(v.Title)
	v.URL = CleanVideoURL(v.URL)
	if _, err := s.videoRepo.Create(ctx, nil, []*types.Video{v}); err != nil {
		return nil, s.internalErr("video create", err)
	}
	return v, nil
}

func (s *contentService) ListVideos(ctx context.Context) ([]*types.Video, error) {
	videos, err := s.videoRepo.List(ctx, nil)
	if err != nil {
		return nil, s.internalErr("video list", err)
	}
	return videos, nil
}

func (s *contentService) UpdateVideo(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if raw, ok := fields["url"].(string); ok {
		fields["url"] = CleanVideoURL(raw)
	}
	if err := s.videoRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return s.internalErr("video update", err)
	}
	return nil
}

func (s *contentService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if err := s.videoRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return s.internalErr("video delete", err)
	}
	return nil
}

func (s *contentService) CreateGame(ctx context.Context, g *types.Game) (*types.Game, error) {
	if g == nil || strings.TrimSpace(g.Name) == "" {
		return nil, apierr.Validation("Tên trò chơi không được để trống")
	}
	g.ID = uuid.New()
	g.Name = strings.TrimSpace(g.Name)
	if _, err := s.gameRepo.Create(ctx, nil, []*types.Game{g}); err != nil {
		return nil, s.internalErr("game create", err)
	}
	return g, nil
}

func (s *contentService) ListGames(ctx context.Context) ([]*types.Game, error) {
	games, err := s.gameRepo.List(ctx, nil)
	if err != nil {
		return nil, s.internalErr("game list", err)
	}
	return games, nil
}

func (s *contentService) UpdateGame(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if err := s.gameRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return s.internalErr("game update", err)
	}
	return nil
}

func (s *contentService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := s.gameRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return s.internalErr("game delete", err)
	}
	return nil
}

// RecordScore appends a play result and rolls the points into the student's
// running totals in the same transaction. Guest sessions carry uuid.Nil and
// only get the score row skipped, never an error.
func (s *contentService) RecordScore(ctx context.Context, score *types.GameScore) (*types.GameScore, error) {
	if score == nil || score.GameID == uuid.Nil {
		return nil, apierr.Validation("Thiếu thông tin trò chơi")
	}
	if score.StudentID == uuid.Nil {
		return nil, nil
	}
	score.ID = uuid.New()
	if score.PlayedAt.IsZero() {
		score.PlayedAt = time.Now().UTC()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.scoreRepo.Create(ctx, tx, []*types.GameScore{score}); err != nil {
			return err
		}
		students, err := s.studentRepo.GetByIDs(ctx, tx, []uuid.UUID{score.StudentID})
		if err != nil {
			return err
		}
		if len(students) == 0 {
			return apierr.NotFound("Không tìm thấy học sinh")
		}
		st := students[0]
		return s.studentRepo.UpdateFields(ctx, tx, st.ID, map[string]interface{}{
			"score": st.Score + score.Score,
			"stars": st.Stars + score.Stars,
		})
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, s.internalErr("score record", err)
	}
	return score, nil
}

func (s *contentService) ListScoresByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.GameScore, error) {
	scores, err := s.scoreRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return nil, s.internalErr("score list", err)
	}
	return scores, nil
}
