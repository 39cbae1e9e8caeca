package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type GameScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scores []*types.GameScore) ([]*types.GameScore, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.GameScore, error)
	GetByGameIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.GameScore, error)
}

type gameScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameScoreRepo(db *gorm.DB, baseLog *logger.Logger) GameScoreRepo {
	return &gameScoreRepo{db: db, log: baseLog.With("repo", "GameScoreRepo")}
}

func (r *gameScoreRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.GameScore) ([]*types.GameScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(scores) == 0 {
		return []*types.GameScore{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *gameScoreRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.GameScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GameScore
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("played_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gameScoreRepo) GetByGameIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.GameScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GameScore
	if len(gameIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("game_id IN ?", gameIDs).
		Order("played_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
