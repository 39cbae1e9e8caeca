package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// EditorBootstrap is everything the checkpoint editor needs to open: the
// lesson, its latest version with checkpoints, and the vocabulary picker
// data. The independent loads run concurrently.
type EditorBootstrap struct {
	Lesson      *types.Lesson          `json:"lesson"`
	Version     *types.LessonVersion   `json:"version,omitempty"`
	Checkpoints []types.CheckpointItem `json:"checkpoints"`
	Vocabulary  []*types.VocabItem     `json:"vocabulary"`
	Categories  []*types.Category      `json:"categories"`
}

type LessonService interface {
	Create(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error)
	List(ctx context.Context) ([]*types.Lesson, error)
	Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, lessonID uuid.UUID) error

	LoadEditor(ctx context.Context, lessonID uuid.UUID) (*EditorBootstrap, error)

	// Save saga steps. Each persists one slice of editor state and is
	// recorded independently by the saga runner.
	PersistCheckpoints(ctx context.Context, versionID uuid.UUID, items []types.CheckpointItem) error
	CreateVersionWithCheckpoints(ctx context.Context, lesson *types.Lesson, items []types.CheckpointItem) (*types.LessonVersion, error)
	PersistVersionMeta(ctx context.Context, versionID uuid.UUID, videoURL string, difficulty int, vocabIDs []uuid.UUID) error
	PersistLessonInfo(ctx context.Context, lessonID uuid.UUID, title, description string) error
}

type lessonService struct {
	db           *gorm.DB
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	versionRepo  repos.LessonVersionRepo
	cpRepo       repos.CheckpointRepo
	vocabRepo    repos.VocabRepo
	categoryRepo repos.CategoryRepo
}

func NewLessonService(
	db *gorm.DB,
	baseLog *logger.Logger,
	lessonRepo repos.LessonRepo,
	versionRepo repos.LessonVersionRepo,
	cpRepo repos.CheckpointRepo,
	vocabRepo repos.VocabRepo,
	categoryRepo repos.CategoryRepo,
) LessonService {
	return &lessonService{
		db:           db,
		log:          baseLog.With("service", "LessonService"),
		lessonRepo:   lessonRepo,
		versionRepo:  versionRepo,
		cpRepo:       cpRepo,
		vocabRepo:    vocabRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *lessonService) Create(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error) {
	if lesson == nil || strings.TrimSpace(lesson.Title) == "" {
		return nil, apierr.Validation("Tên bài học không được để trống")
	}
	lesson.ID = uuid.New()
	lesson.Title = strings.TrimSpace(lesson.Title)
	lesson.VideoURL = CleanVideoURL(lesson.VideoURL)
	if lesson.DifficultyLevel < DifficultyBeginner || lesson.DifficultyLevel > DifficultyProfessional {
		lesson.DifficultyLevel = DifficultyIntermediate
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lessonRepo.Create(ctx, tx, []*types.Lesson{lesson}); err != nil {
			return fmt.Errorf("create lesson: %w", err)
		}
		version := &types.LessonVersion{
			ID:              uuid.New(),
			LessonID:        lesson.ID,
			VideoURL:        lesson.VideoURL,
			DifficultyLevel: lesson.DifficultyLevel,
		}
		if _, err := s.versionRepo.Create(ctx, tx, []*types.LessonVersion{version}); err != nil {
			return fmt.Errorf("create initial version: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("lesson create failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return lesson, nil
}

func (s *lessonService) List(ctx context.Context) ([]*types.Lesson, error) {
	lessons, err := s.lessonRepo.List(ctx, nil)
	if err != nil {
		s.log.Error("lesson list failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return lessons, nil
}

func (s *lessonService) Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	lessons, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
	if err != nil {
		s.log.Error("lesson get failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if len(lessons) == 0 {
		return nil, apierr.NotFound("Không tìm thấy bài học")
	}
	return lessons[0], nil
}

func (s *lessonService) Update(ctx context.Context, lessonID uuid.UUID, fields map[string]interface{}) error {
	if raw, ok := fields["video_url"].(string); ok {
		fields["video_url"] = CleanVideoURL(raw)
	}
	if err := s.lessonRepo.UpdateFields(ctx, nil, lessonID, fields); err != nil {
		s.log.Error("lesson update failed", "error", err)
		return apierr.Internal(errors.New(MsgGenericRetry))
	}
	return nil
}

func (s *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	if err := s.lessonRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{lessonID}); err != nil {
		s.log.Error("lesson delete failed", "error", err)
		return apierr.Internal(errors.New(MsgGenericRetry))
	}
	return nil
}

// LoadEditor fires the lesson load and the vocabulary picker loads
// concurrently and merges the results.
func (s *lessonService) LoadEditor(ctx context.Context, lessonID uuid.UUID) (*EditorBootstrap, error) {
	boot := &EditorBootstrap{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lessons, err := s.lessonRepo.GetByIDs(gctx, nil, []uuid.UUID{lessonID})
		if err != nil {
			return fmt.Errorf("load lesson: %w", err)
		}
		if len(lessons) == 0 {
			return apierr.NotFound("Không tìm thấy bài học")
		}
		boot.Lesson = lessons[0]

		version, err := s.versionRepo.GetLatestByLessonID(gctx, nil, lessonID)
		if err != nil {
			return fmt.Errorf("load lesson version: %w", err)
		}
		boot.Version = version
		if version == nil {
			boot.Checkpoints = []types.CheckpointItem{}
			return nil
		}
		rows, err := s.cpRepo.GetByVersionIDs(gctx, nil, []uuid.UUID{version.ID})
		if err != nil {
			return fmt.Errorf("load checkpoints: %w", err)
		}
		boot.Checkpoints = checkpointItemsFromRows(rows, s.log)
		return nil
	})
	g.Go(func() error {
		vocab, err := s.vocabRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		boot.Vocabulary = vocab
		return nil
	})
	g.Go(func() error {
		cats, err := s.categoryRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		boot.Categories = cats
		return nil
	})

	if err := g.Wait(); err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		s.log.Error("editor bootstrap failed", "lesson_id", lessonID.String(), "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return boot, nil
}

func (s *lessonService) PersistCheckpoints(ctx context.Context, versionID uuid.UUID, items []types.CheckpointItem) error {
	rows, err := checkpointRowsFromItems(versionID, items)
	if err != nil {
		return err
	}
	return s.cpRepo.ReplaceForVersion(ctx, nil, versionID, rows)
}

// CreateVersionWithCheckpoints backs the first save of a lesson that has no
// version row yet: the version and its full checkpoint list commit together.
func (s *lessonService) CreateVersionWithCheckpoints(ctx context.Context, lesson *types.Lesson, items []types.CheckpointItem) (*types.LessonVersion, error) {
	version := &types.LessonVersion{
		ID:              uuid.New(),
		LessonID:        lesson.ID,
		VideoURL:        CleanVideoURL(lesson.VideoURL),
		DifficultyLevel: lesson.DifficultyLevel,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.versionRepo.Create(ctx, tx, []*types.LessonVersion{version}); err != nil {
			return fmt.Errorf("create version: %w", err)
		}
		rows, err := checkpointRowsFromItems(version.ID, items)
		if err != nil {
			return err
		}
		return s.cpRepo.ReplaceForVersion(ctx, tx, version.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

func (s *lessonService) PersistVersionMeta(ctx context.Context, versionID uuid.UUID, videoURL string, difficulty int, vocabIDs []uuid.UUID) error {
	if difficulty < DifficultyBeginner || difficulty > DifficultyProfessional {
		difficulty = DifficultyIntermediate
	}
	rawIDs, err := json.Marshal(vocabIDs)
	if err != nil {
		return fmt.Errorf("marshal vocabulary ids: %w", err)
	}
	return s.versionRepo.UpdateFields(ctx, nil, versionID, map[string]interface{}{
		"video_url":        CleanVideoURL(videoURL),
		"difficulty_level": difficulty,
		"vocabulary_ids":   datatypes.JSON(rawIDs),
	})
}

func (s *lessonService) PersistLessonInfo(ctx context.Context, lessonID uuid.UUID, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apierr.Validation("Tên bài học không được để trống")
	}
	return s.lessonRepo.UpdateFields(ctx, nil, lessonID, map[string]interface{}{
		"title":       title,
		"description": description,
	})
}

func checkpointRowsFromItems(versionID uuid.UUID, items []types.CheckpointItem) ([]*types.Checkpoint, error) {
	now := time.Now().UTC()
	rows := make([]*types.Checkpoint, 0, len(items))
	for _, it := range items {
		rawContent, err := json.Marshal(it.Content)
		if err != nil {
			return nil, fmt.Errorf("marshal checkpoint content %q: %w", it.Token, err)
		}
		rows = append(rows, &types.Checkpoint{
			ID:        uuid.New(),
			VersionID: versionID,
			Token:     it.Token,
			TimeSec:   it.TimeSec,
			Kind:      string(it.Kind),
			VocabID:   it.VocabID,
			Content:   datatypes.JSON(rawContent),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return rows, nil
}

func checkpointItemsFromRows(rows []*types.Checkpoint, log *logger.Logger) []types.CheckpointItem {
	items := make([]types.CheckpointItem, 0, len(rows))
	for _, row := range rows {
		kind, ok := types.ParseCheckpointKind(row.Kind)
		if !ok {
			if log != nil {
				log.Warn("checkpoint row carries unknown kind, defaulting to vocab", "token", row.Token, "kind", row.Kind)
			}
			kind = types.CheckpointVocab
		}
		content := types.EmptyCheckpointContent()
		if len(row.Content) > 0 {
			if err := json.Unmarshal(row.Content, &content); err != nil && log != nil {
				log.Warn("corrupt checkpoint content, using empty", "token", row.Token, "error", err)
			}
		}
		items = append(items, types.CheckpointItem{
			Token:   row.Token,
			TimeSec: row.TimeSec,
			Kind:    kind,
			VocabID: row.VocabID,
			Content: content,
		})
	}
	return items
}
