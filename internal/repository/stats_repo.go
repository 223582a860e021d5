package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

// StatsRepository runs the cross-table aggregations behind the dashboard.
// Read-only; it never mutates anything.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context, role *domain.UserRole) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountClasses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Class{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountSubjects(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subject{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountGrades(ctx context.Context, filter GradeFilter) (int64, error) {
	var count int64
	err := applyGradeFilter(r.db.WithContext(ctx).Model(&domain.Grade{}), filter).Count(&count).Error
	return count, err
}

func (r *StatsRepository) AverageGrade(ctx context.Context, filter GradeFilter) (float64, error) {
	var avg *float64
	err := applyGradeFilter(r.db.WithContext(ctx).Model(&domain.Grade{}), filter).
		Select("AVG(grade)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *StatsRepository) CountAbsences(ctx context.Context, filter AbsenceFilter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Absence{})
	if filter.StudentIDs != nil {
		if len(filter.StudentIDs) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("student_id IN ?", filter.StudentIDs)
		}
	}
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// SubjectAverage is one row of a student's per-subject breakdown.
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (r *StatsRepository) GradesBySubject(ctx context.Context, studentID int64) ([]SubjectAverage, error) {
	var rows []SubjectAverage
	err := r.db.WithContext(ctx).Model(&domain.Grade{}).
		Select("subjects.name AS subject, AVG(grades.grade) AS average, COUNT(grades.id) AS count").
		Joins("JOIN subjects ON subjects.id = grades.subject_id").
		Where("grades.student_id = ?", studentID).
		Group("subjects.id, subjects.name").
		Scan(&rows).Error
	return rows, err
}
