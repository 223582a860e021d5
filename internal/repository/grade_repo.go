package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

// GradeFilter narrows grade queries. SubjectIDs carries the teacher scope;
// an empty non-nil slice matches nothing.
type GradeFilter struct {
	StudentID  *int64
	SubjectID  *int64
	SubjectIDs []int64
}

type GradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) Create(ctx context.Context, g *domain.Grade) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*domain.Grade, error) {
	var g domain.Grade
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GradeRepository) List(ctx context.Context, filter GradeFilter) ([]domain.Grade, error) {
	q := applyGradeFilter(r.db.WithContext(ctx).Preload("Student").Preload("Subject").Order("id"), filter)
	var grades []domain.Grade
	if err := q.Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

// Values returns just the numeric grade values matching the filter, for
// distribution bucketing.
func (r *GradeRepository) Values(ctx context.Context, filter GradeFilter) ([]float64, error) {
	var values []float64
	q := applyGradeFilter(r.db.WithContext(ctx).Model(&domain.Grade{}), filter)
	if err := q.Pluck("grade", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// StudentIDsForSubjects returns the distinct students graded in the given
// subjects. Defines the teacher's student scope for absences.
func (r *GradeRepository) StudentIDsForSubjects(ctx context.Context, subjectIDs []int64) ([]int64, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Grade{}).
		Distinct("student_id").
		Where("subject_id IN ?", subjectIDs).
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *GradeRepository) Update(ctx context.Context, g *domain.Grade) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Grade{}, id).Error
}

func applyGradeFilter(q *gorm.DB, filter GradeFilter) *gorm.DB {
	if filter.SubjectIDs != nil {
		if len(filter.SubjectIDs) == 0 {
			return q.Where("1 = 0")
		}
		q = q.Where("subject_id IN ?", filter.SubjectIDs)
	}
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.SubjectID != nil {
		q = q.Where("subject_id = ?", *filter.SubjectID)
	}
	return q
}
