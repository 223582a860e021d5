package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(ctx context.Context, c *domain.Class) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*domain.Class, error) {
	var c domain.Class
	if err := r.db.WithContext(ctx).Preload("Teacher").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all classes, or only those owned by teacherID when non-nil.
func (r *ClassRepository) List(ctx context.Context, teacherID *int64) ([]domain.Class, error) {
	q := r.db.WithContext(ctx).Preload("Teacher").Order("id")
	if teacherID != nil {
		q = q.Where("teacher_id = ?", *teacherID)
	}
	var classes []domain.Class
	if err := q.Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// IDsForTeacher returns the ids of classes taught by teacherID.
func (r *ClassRepository) IDsForTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Class{}).
		Where("teacher_id = ?", teacherID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ClassRepository) Update(ctx context.Context, c *domain.Class) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Class{}, id).Error
}
