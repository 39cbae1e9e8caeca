package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type StudentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Student, error)
	GetByPin(ctx context.Context, tx *gorm.DB, pin string) (*types.Student, error)
	SearchByName(ctx context.Context, tx *gorm.DB, name, className string) ([]*types.Student, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Student, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, fields map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(students) == 0 {
		return []*types.Student{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Student
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", studentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByPin is an exact match; a pin either identifies one student or none.
func (r *studentRepo) GetByPin(ctx context.Context, tx *gorm.DB, pin string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, nil
	}
	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Where("pin_code = ?", pin).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// SearchByName is a case-insensitive substring match, optionally narrowed by
// class name. LOWER(...) LIKE keeps it portable across postgres and sqlite.
func (r *studentRepo) SearchByName(ctx context.Context, tx *gorm.DB, name, className string) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	q := transaction.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	if cn := strings.TrimSpace(className); cn != "" {
		q = q.Where("LOWER(class_name) = ?", strings.ToLower(cn))
	}
	var results []*types.Student
	if err := q.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Order("class_name ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("id = ?", studentID).
		Updates(fields).Error
}

func (r *studentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(studentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", studentIDs).
		Delete(&types.Student{}).Error
}
