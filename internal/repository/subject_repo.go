package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Create(ctx context.Context, s *domain.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	var s domain.Subject
	if err := r.db.WithContext(ctx).Preload("Class").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) List(ctx context.Context, classID *int64) ([]domain.Subject, error) {
	q := r.db.WithContext(ctx).Preload("Class").Order("id")
	if classID != nil {
		q = q.Where("class_id = ?", *classID)
	}
	var subjects []domain.Subject
	if err := q.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// IDsForTeacher returns the subject ids taught by teacherID, via class
// ownership. The teacher-scoped grade and absence queries build on this.
func (r *SubjectRepository) IDsForTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subject{}).
		Joins("JOIN classes ON classes.id = subjects.class_id").
		Where("classes.teacher_id = ?", teacherID).
		Pluck("subjects.id", &ids).Error
	return ids, err
}

func (r *SubjectRepository) Update(ctx context.Context, s *domain.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Subject{}, id).Error
}
