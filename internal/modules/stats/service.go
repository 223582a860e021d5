package stats

import (
	"context"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

type Caller struct {
	ID   int64
	Role domain.UserRole
}

type Service struct {
	stats    *repository.StatsRepository
	classes  *repository.ClassRepository
	subjects *repository.SubjectRepository
	grades   *repository.GradeRepository
}

func NewService(
	stats *repository.StatsRepository,
	classes *repository.ClassRepository,
	subjects *repository.SubjectRepository,
	grades *repository.GradeRepository,
) *Service {
	return &Service{stats: stats, classes: classes, subjects: subjects, grades: grades}
}

// Dashboard returns the summary matching the caller's role.
func (s *Service) Dashboard(ctx context.Context, caller Caller) (interface{}, error) {
	switch caller.Role {
	case domain.RoleAdmin:
		return s.adminDashboard(ctx)
	case domain.RoleTeacher:
		return s.teacherDashboard(ctx, caller.ID)
	case domain.RoleStudent:
		return s.studentDashboard(ctx, caller.ID)
	default:
		return s.parentDashboard(ctx)
	}
}

func (s *Service) adminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var (
		out  AdminDashboard
		err  error
		role domain.UserRole
	)

	role = domain.RoleStudent
	if out.Students, err = s.stats.CountUsers(ctx, &role); err != nil {
		return nil, err
	}
	role = domain.RoleTeacher
	if out.Teachers, err = s.stats.CountUsers(ctx, &role); err != nil {
		return nil, err
	}
	role = domain.RoleParent
	if out.Parents, err = s.stats.CountUsers(ctx, &role); err != nil {
		return nil, err
	}
	if out.Classes, err = s.stats.CountClasses(ctx); err != nil {
		return nil, err
	}
	if out.Subjects, err = s.stats.CountSubjects(ctx); err != nil {
		return nil, err
	}
	if out.Grades, err = s.stats.CountGrades(ctx, repository.GradeFilter{}); err != nil {
		return nil, err
	}
	if out.Absences, err = s.stats.CountAbsences(ctx, repository.AbsenceFilter{}); err != nil {
		return nil, err
	}
	if out.AverageGrade, err = s.stats.AverageGrade(ctx, repository.GradeFilter{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) teacherDashboard(ctx context.Context, teacherID int64) (*TeacherDashboard, error) {
	classIDs, err := s.classes.IDsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	subjectIDs, err := s.subjects.IDsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if subjectIDs == nil {
		subjectIDs = []int64{}
	}
	filter := repository.GradeFilter{SubjectIDs: subjectIDs}

	out := TeacherDashboard{
		Classes:  int64(len(classIDs)),
		Subjects: int64(len(subjectIDs)),
	}
	if out.Grades, err = s.stats.CountGrades(ctx, filter); err != nil {
		return nil, err
	}
	if out.AverageGrade, err = s.stats.AverageGrade(ctx, filter); err != nil {
		return nil, err
	}

	studentIDs, err := s.grades.StudentIDsForSubjects(ctx, subjectIDs)
	if err != nil {
		return nil, err
	}
	out.Students = int64(len(studentIDs))
	return &out, nil
}

func (s *Service) studentDashboard(ctx context.Context, studentID int64) (*StudentDashboard, error) {
	filter := repository.GradeFilter{StudentID: &studentID}

	var (
		out StudentDashboard
		err error
	)
	if out.Grades, err = s.stats.CountGrades(ctx, filter); err != nil {
		return nil, err
	}
	if out.AverageGrade, err = s.stats.AverageGrade(ctx, filter); err != nil {
		return nil, err
	}
	if out.Absences, err = s.stats.CountAbsences(ctx, repository.AbsenceFilter{StudentID: &studentID}); err != nil {
		return nil, err
	}

	rows, err := s.stats.GradesBySubject(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out.SubjectScores = make([]SubjectAverage, 0, len(rows))
	for _, row := range rows {
		out.SubjectScores = append(out.SubjectScores, SubjectAverage{
			Subject: row.Subject,
			Average: row.Average,
			Count:   row.Count,
		})
	}
	return &out, nil
}

func (s *Service) parentDashboard(ctx context.Context) (*ParentDashboard, error) {
	var (
		out ParentDashboard
		err error
	)

	role := domain.RoleStudent
	if out.Students, err = s.stats.CountUsers(ctx, &role); err != nil {
		return nil, err
	}
	if out.Grades, err = s.stats.CountGrades(ctx, repository.GradeFilter{}); err != nil {
		return nil, err
	}
	if out.AverageGrade, err = s.stats.AverageGrade(ctx, repository.GradeFilter{}); err != nil {
		return nil, err
	}
	if out.Absences, err = s.stats.CountAbsences(ctx, repository.AbsenceFilter{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GradesDistribution buckets visible grades into the four fixed ranges. The
// last bucket is inclusive on both ends.
func (s *Service) GradesDistribution(ctx context.Context, caller Caller) (*Distribution, error) {
	filter := repository.GradeFilter{}
	switch caller.Role {
	case domain.RoleStudent:
		filter.StudentID = &caller.ID
	case domain.RoleTeacher:
		ids, err := s.subjects.IDsForTeacher(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []int64{}
		}
		filter.SubjectIDs = ids
	}

	values, err := s.grades.Values(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := []DistributionBucket{
		{Label: "0-5"},
		{Label: "5-10"},
		{Label: "10-15"},
		{Label: "15-20"},
	}
	for _, v := range values {
		switch {
		case v < 5:
			buckets[0].Count++
		case v < 10:
			buckets[1].Count++
		case v < 15:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	return &Distribution{Buckets: buckets, Total: int64(len(values))}, nil
}
