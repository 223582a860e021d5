package absences

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

var (
	ErrAbsenceNotFound = errors.New("absence not found")
	ErrStudentNotFound = errors.New("student not found")
)

type Caller struct {
	ID   int64
	Role domain.UserRole
}

type Service struct {
	absences *repository.AbsenceRepository
	users    *repository.UserRepository
	subjects *repository.SubjectRepository
	grades   *repository.GradeRepository
}

func NewService(
	absences *repository.AbsenceRepository,
	users *repository.UserRepository,
	subjects *repository.SubjectRepository,
	grades *repository.GradeRepository,
) *Service {
	return &Service{absences: absences, users: users, subjects: subjects, grades: grades}
}

func (s *Service) checkStudent(ctx context.Context, id int64) error {
	_, err := s.users.GetByIDAndRole(ctx, id, domain.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateAbsenceRequest) (*domain.Absence, error) {
	if err := s.checkStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	absence := &domain.Absence{
		StudentID: req.StudentID,
		Date:      req.Date,
		Reason:    req.Reason,
	}
	if err := s.absences.Create(ctx, absence); err != nil {
		return nil, err
	}
	return absence, nil
}

func (s *Service) GetByID(ctx context.Context, caller Caller, id int64) (*domain.Absence, error) {
	absence, err := s.absences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsenceNotFound
		}
		return nil, err
	}

	if caller.Role == domain.RoleStudent && absence.StudentID != caller.ID {
		return nil, ErrAbsenceNotFound
	}
	return absence, nil
}

// scopeFilter narrows visibility: students see their own records, teachers
// see students graded in subjects of their classes.
func (s *Service) scopeFilter(ctx context.Context, caller Caller, filter repository.AbsenceFilter) (repository.AbsenceFilter, error) {
	switch caller.Role {
	case domain.RoleStudent:
		filter.StudentID = &caller.ID
	case domain.RoleTeacher:
		subjectIDs, err := s.subjects.IDsForTeacher(ctx, caller.ID)
		if err != nil {
			return filter, err
		}
		studentIDs, err := s.grades.StudentIDsForSubjects(ctx, subjectIDs)
		if err != nil {
			return filter, err
		}
		if studentIDs == nil {
			studentIDs = []int64{}
		}
		filter.StudentIDs = studentIDs
	}
	return filter, nil
}

func (s *Service) List(ctx context.Context, caller Caller, studentID *int64) ([]domain.Absence, error) {
	filter, err := s.scopeFilter(ctx, caller, repository.AbsenceFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	return s.absences.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAbsenceRequest) (*domain.Absence, error) {
	absence, err := s.absences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsenceNotFound
		}
		return nil, err
	}

	if req.Date != nil {
		absence.Date = *req.Date
	}
	if req.Reason != nil {
		absence.Reason = *req.Reason
	}

	if err := s.absences.Update(ctx, absence); err != nil {
		return nil, err
	}
	return absence, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.absences.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceNotFound
		}
		return err
	}
	return s.absences.Delete(ctx, id)
}
