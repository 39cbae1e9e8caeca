package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type LessonVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, versions []*types.LessonVersion) ([]*types.LessonVersion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, versionIDs []uuid.UUID) ([]*types.LessonVersion, error)
	GetLatestByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.LessonVersion, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fields map[string]interface{}) error
}

type lessonVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonVersionRepo(db *gorm.DB, baseLog *logger.Logger) LessonVersionRepo {
	return &lessonVersionRepo{db: db, log: baseLog.With("repo", "LessonVersionRepo")}
}

func (r *lessonVersionRepo) Create(ctx context.Context, tx *gorm.DB, versions []*types.LessonVersion) ([]*types.LessonVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(versions) == 0 {
		return []*types.LessonVersion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *lessonVersionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, versionIDs []uuid.UUID) ([]*types.LessonVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LessonVersion
	if len(versionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", versionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonVersionRepo) GetLatestByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.LessonVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LessonVersion
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *lessonVersionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.LessonVersion{}).
		Where("id = ?", versionID).
		Updates(fields).Error
}
