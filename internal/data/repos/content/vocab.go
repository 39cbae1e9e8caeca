package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type VocabRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.VocabItem) ([]*types.VocabItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.VocabItem, error)
	GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.VocabItem, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.VocabItem, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fields map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error
}

type vocabRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabRepo(db *gorm.DB, baseLog *logger.Logger) VocabRepo {
	return &vocabRepo{db: db, log: baseLog.With("repo", "VocabRepo")}
}

func (r *vocabRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.VocabItem) ([]*types.VocabItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return []*types.VocabItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *vocabRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.VocabItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VocabItem
	if len(itemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabRepo) GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.VocabItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VocabItem
	if len(categoryIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("word ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.VocabItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VocabItem
	if err := transaction.WithContext(ctx).
		Order("word ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabRepo) UpdateFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.VocabItem{}).
		Where("id = ?", itemID).
		Updates(fields).Error
}

func (r *vocabRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(itemIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Delete(&types.VocabItem{}).Error
}
