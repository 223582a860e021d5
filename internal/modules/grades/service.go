package grades

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

// Caller identifies the authenticated user for scoping decisions.
type Caller struct {
	ID   int64
	Role domain.UserRole
}

type Service struct {
	grades   GradeRepositoryInterface
	users    UserRepositoryInterface
	subjects SubjectRepositoryInterface
}

func NewService(grades GradeRepositoryInterface, users UserRepositoryInterface, subjects SubjectRepositoryInterface) *Service {
	return &Service{grades: grades, users: users, subjects: subjects}
}

func (s *Service) validateRefs(ctx context.Context, studentID, subjectID int64) error {
	if _, err := s.users.GetByIDAndRole(ctx, studentID, domain.RoleStudent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	return nil
}

// checkWriteScope rejects teachers writing grades for subjects that do not
// belong to one of their classes. Admins pass unconditionally.
func (s *Service) checkWriteScope(ctx context.Context, caller Caller, subjectID int64) error {
	if caller.Role != domain.RoleTeacher {
		return nil
	}
	ids, err := s.subjects.IDsForTeacher(ctx, caller.ID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == subjectID {
			return nil
		}
	}
	return ErrSubjectNotAllowed
}

func (s *Service) Create(ctx context.Context, caller Caller, req CreateGradeRequest) (*domain.Grade, error) {
	if req.Grade < domain.GradeMin || req.Grade > domain.GradeMax {
		return nil, ErrGradeOutOfRange
	}
	if err := s.validateRefs(ctx, req.StudentID, req.SubjectID); err != nil {
		return nil, err
	}
	if err := s.checkWriteScope(ctx, caller, req.SubjectID); err != nil {
		return nil, err
	}

	grade := &domain.Grade{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Grade:     req.Grade,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *Service) GetByID(ctx context.Context, caller Caller, id int64) (*domain.Grade, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}

	// Students only see their own grades; a foreign ID reads as absent.
	if caller.Role == domain.RoleStudent && grade.StudentID != caller.ID {
		return nil, ErrGradeNotFound
	}
	return grade, nil
}

// scopeFilter narrows the list filter to what the caller may see.
func (s *Service) scopeFilter(ctx context.Context, caller Caller, filter ListFilter) (repository.GradeFilter, error) {
	out := repository.GradeFilter{
		StudentID: filter.StudentID,
		SubjectID: filter.SubjectID,
	}

	switch caller.Role {
	case domain.RoleStudent:
		out.StudentID = &caller.ID
	case domain.RoleTeacher:
		ids, err := s.subjects.IDsForTeacher(ctx, caller.ID)
		if err != nil {
			return out, err
		}
		if ids == nil {
			ids = []int64{}
		}
		out.SubjectIDs = ids
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, caller Caller, filter ListFilter) ([]domain.Grade, error) {
	scoped, err := s.scopeFilter(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return s.grades.List(ctx, scoped)
}

func (s *Service) Update(ctx context.Context, caller Caller, id int64, req UpdateGradeRequest) (*domain.Grade, error) {
	if req.Grade < domain.GradeMin || req.Grade > domain.GradeMax {
		return nil, ErrGradeOutOfRange
	}

	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}
	if err := s.checkWriteScope(ctx, caller, grade.SubjectID); err != nil {
		return nil, err
	}

	grade.Grade = req.Grade
	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *Service) Delete(ctx context.Context, caller Caller, id int64) error {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeNotFound
		}
		return err
	}
	if err := s.checkWriteScope(ctx, caller, grade.SubjectID); err != nil {
		return err
	}
	return s.grades.Delete(ctx, id)
}
