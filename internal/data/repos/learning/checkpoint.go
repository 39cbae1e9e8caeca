package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type CheckpointRepo interface {
	GetByVersionIDs(ctx context.Context, tx *gorm.DB, versionIDs []uuid.UUID) ([]*types.Checkpoint, error)
	// ReplaceForVersion swaps the whole checkpoint list of one version in a
	// single transaction. The editor always saves the full list, so partial
	// row updates have no use here.
	ReplaceForVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, rows []*types.Checkpoint) error
}

type checkpointRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckpointRepo(db *gorm.DB, baseLog *logger.Logger) CheckpointRepo {
	return &checkpointRepo{db: db, log: baseLog.With("repo", "CheckpointRepo")}
}

func (r *checkpointRepo) GetByVersionIDs(ctx context.Context, tx *gorm.DB, versionIDs []uuid.UUID) ([]*types.Checkpoint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Checkpoint
	if len(versionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("version_id IN ?", versionIDs).
		Order("version_id, time_sec ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checkpointRepo) ReplaceForVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, rows []*types.Checkpoint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.
			Where("version_id = ?", versionID).
			Delete(&types.Checkpoint{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return inner.Create(&rows).Error
	})
}
