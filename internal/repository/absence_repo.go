package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

// AbsenceFilter narrows absence queries. StudentIDs carries the teacher
// scope; an empty non-nil slice matches nothing.
type AbsenceFilter struct {
	StudentID  *int64
	StudentIDs []int64
}

type AbsenceRepository struct {
	db *gorm.DB
}

func NewAbsenceRepository(db *gorm.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) Create(ctx context.Context, a *domain.Absence) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AbsenceRepository) GetByID(ctx context.Context, id int64) (*domain.Absence, error) {
	var a domain.Absence
	if err := r.db.WithContext(ctx).Preload("Student").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AbsenceRepository) List(ctx context.Context, filter AbsenceFilter) ([]domain.Absence, error) {
	q := r.db.WithContext(ctx).Preload("Student").Order("date DESC")
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
	var absences []domain.Absence
	if err := q.Find(&absences).Error; err != nil {
		return nil, err
	}
	return absences, nil
}

func (r *AbsenceRepository) Update(ctx context.Context, a *domain.Absence) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AbsenceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Absence{}, id).Error
}
