package classes

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrTeacherNotFound = errors.New("teacher not found")
)

type Service struct {
	classes *repository.ClassRepository
	users   *repository.UserRepository
}

func NewService(classes *repository.ClassRepository, users *repository.UserRepository) *Service {
	return &Service{classes: classes, users: users}
}

// checkTeacher verifies the referenced user exists and holds the teacher role.
func (s *Service) checkTeacher(ctx context.Context, id int64) error {
	_, err := s.users.GetByIDAndRole(ctx, id, domain.RoleTeacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateClassRequest) (*domain.Class, error) {
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	class := &domain.Class{Name: req.Name, TeacherID: req.TeacherID}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

// List returns classes visible to the caller. Teachers only see classes they
// lead; everyone else sees all of them.
func (s *Service) List(ctx context.Context, callerID int64, callerRole domain.UserRole) ([]domain.Class, error) {
	var teacherID *int64
	if callerRole == domain.RoleTeacher {
		teacherID = &callerID
	}
	return s.classes.List(ctx, teacherID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClassRequest) (*domain.Class, error) {
	class, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
		class.TeacherID = *req.TeacherID
	}
	if req.Name != nil {
		class.Name = *req.Name
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.classes.Delete(ctx, id)
}
