package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type StudentService interface {
	Create(ctx context.Context, student *types.Student) (*types.Student, error)
	List(ctx context.Context) ([]*types.Student, error)
	Get(ctx context.Context, studentID uuid.UUID) (*types.Student, error)
	Search(ctx context.Context, name, className string) ([]*types.Student, error)
	Update(ctx context.Context, studentID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, studentID uuid.UUID) error
	RegenerateAvatar(ctx context.Context, studentID uuid.UUID) (*types.Student, error)
}

type studentService struct {
	db            *gorm.DB
	log           *logger.Logger
	studentRepo   repos.StudentRepo
	avatarService AvatarService
}

func NewStudentService(db *gorm.DB, baseLog *logger.Logger, studentRepo repos.StudentRepo, avatarService AvatarService) StudentService {
	return &studentService{
		db:            db,
		log:           baseLog.With("service", "StudentService"),
		studentRepo:   studentRepo,
		avatarService: avatarService,
	}
}

// Create registers a student and generates the initials avatar in the same
// flow. The pin is optional; when present it must be 4 digits and unused.
func (s *studentService) Create(ctx context.Context, student *types.Student) (*types.Student, error) {
	if student == nil || strings.TrimSpace(student.Name) == "" {
		return nil, apierr.Validation(MsgNameRequired)
	}
	student.Name = strings.TrimSpace(student.Name)
	student.ClassName = strings.TrimSpace(student.ClassName)
	student.ID = uuid.New()

	if student.PinCode != nil {
		pin := strings.TrimSpace(*student.PinCode)
		if !pinPattern.MatchString(pin) {
			return nil, apierr.Validation("Mã PIN phải gồm 4 chữ số")
		}
		existing, err := s.studentRepo.GetByPin(ctx, nil, pin)
		if err != nil {
			s.log.Error("pin uniqueness check failed", "error", err)
			return nil, apierr.Internal(errors.New(MsgGenericRetry))
		}
		if existing != nil {
			return nil, apierr.Validation("Mã PIN đã được sử dụng")
		}
		student.PinCode = &pin
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aErr := s.avatarService.CreateStudentAvatar(ctx, student); aErr != nil {
			s.log.Warn("student avatar generation failed (ignored)", "error", aErr)
		}
		_, cErr := s.studentRepo.Create(ctx, tx, []*types.Student{student})
		return cErr
	})
	if err != nil {
		s.log.Error("student create failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context) ([]*types.Student, error) {
	students, err := s.studentRepo.List(ctx, nil)
	if err != nil {
		s.log.Error("student list failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return students, nil
}

func (s *studentService) Get(ctx context.Context, studentID uuid.UUID) (*types.Student, error) {
	students, err := s.studentRepo.GetByIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		s.log.Error("student get failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if len(students) == 0 {
		return nil, apierr.NotFound("Không tìm thấy học sinh")
	}
	return students[0], nil
}

func (s *studentService) Search(ctx context.Context, name, className string) ([]*types.Student, error) {
	students, err := s.studentRepo.SearchByName(ctx, nil, name, className)
	if err != nil {
		s.log.Error("student search failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return students, nil
}

func (s *studentService) Update(ctx context.Context, studentID uuid.UUID, fields map[string]interface{}) error {
	if raw, ok := fields["pin_code"].(string); ok {
		pin := strings.TrimSpace(raw)
		if pin == "" {
			fields["pin_code"] = nil
		} else {
			if !pinPattern.MatchString(pin) {
				return apierr.Validation("Mã PIN phải gồm 4 chữ số")
			}
			existing, err := s.studentRepo.GetByPin(ctx, nil, pin)
			if err != nil {
				s.log.Error("pin uniqueness check failed", "error", err)
				return apierr.Internal(errors.New(MsgGenericRetry))
			}
			if existing != nil && existing.ID != studentID {
				return apierr.Validation("Mã PIN đã được sử dụng")
			}
			fields["pin_code"] = pin
		}
	}
	if err := s.studentRepo.UpdateFields(ctx, nil, studentID, fields); err != nil {
		s.log.Error("student update failed", "error", err)
		return apierr.Internal(errors.New(MsgGenericRetry))
	}
	return nil
}

func (s *studentService) Delete(ctx context.Context, studentID uuid.UUID) error {
	if err := s.studentRepo.DeleteByIDs(ctx, nil, []uuid.UUID{studentID}); err != nil {
		s.log.Error("student delete failed", "error", err)
		return apierr.Internal(errors.New(MsgGenericRetry))
	}
	return nil
}

func (s *studentService) RegenerateAvatar(ctx context.Context, studentID uuid.UUID) (*types.Student, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.avatarService.CreateStudentAvatar(ctx, student); err != nil {
		s.log.Error("avatar regeneration failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if err := s.studentRepo.UpdateFields(ctx, nil, student.ID, map[string]interface{}{
		"avatar_key": student.AvatarKey,
		"avatar_url": student.AvatarURL,
	}); err != nil {
		s.log.Error("avatar field update failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return student, nil
}
