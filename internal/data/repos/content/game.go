package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type GameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, games []*types.Game) ([]*types.Game, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.Game, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Game, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, fields map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) error
}

type gameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
	return &gameRepo{db: db, log: baseLog.With("repo", "GameRepo")}
}

func (r *gameRepo) Create(ctx context.Context, tx *gorm.DB, games []*types.Game) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(games) == 0 {
		return []*types.Game{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepo) GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Game
	if len(gameIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", gameIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gameRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Game
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gameRepo) UpdateFields(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Game{}).
		Where("id = ?", gameID).
		Updates(fields).Error
}

func (r *gameRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(gameIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", gameIDs).
		Delete(&types.Game{}).Error
}
