package reports

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/pkg/pdf"
	"schoolrecords/internal/repository"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrForbidden       = errors.New("report belongs to another student")
)

type Caller struct {
	ID   int64
	Role domain.UserRole
}

type Service struct {
	users    *repository.UserRepository
	grades   *repository.GradeRepository
	absences *repository.AbsenceRepository
	stats    *repository.StatsRepository
}

func NewService(
	users *repository.UserRepository,
	grades *repository.GradeRepository,
	absences *repository.AbsenceRepository,
	stats *repository.StatsRepository,
) *Service {
	return &Service{users: users, grades: grades, absences: absences, stats: stats}
}

// ReportCard renders the PDF report card for a student. Students may only
// request their own.
func (s *Service) ReportCard(ctx context.Context, caller Caller, studentID int64) ([]byte, error) {
	if caller.Role == domain.RoleStudent && caller.ID != studentID {
		return nil, ErrForbidden
	}

	student, err := s.users.GetByIDAndRole(ctx, studentID, domain.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	filter := repository.GradeFilter{StudentID: &studentID}
	grades, err := s.grades.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	average, err := s.stats.AverageGrade(ctx, filter)
	if err != nil {
		return nil, err
	}
	absences, err := s.absences.List(ctx, repository.AbsenceFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}

	card := pdf.ReportCard{
		StudentName:  student.Name,
		StudentEmail: student.Email,
		GeneratedAt:  time.Now(),
		AverageGrade: average,
	}
	for _, g := range grades {
		subjectName := ""
		if g.Subject != nil {
			subjectName = g.Subject.Name
		}
		card.Grades = append(card.Grades, pdf.ReportGrade{
			Subject: subjectName,
			Grade:   g.Grade,
			Date:    g.CreatedAt,
		})
	}
	for _, a := range absences {
		card.Absences = append(card.Absences, pdf.ReportAbsence{
			Date:   a.Date,
			Reason: a.Reason,
		})
	}

	return pdf.RenderReportCard(card)
}
