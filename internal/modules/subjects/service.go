package subjects

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrClassNotFound   = errors.New("class not found")
)

type Service struct {
	subjects *repository.SubjectRepository
	classes  *repository.ClassRepository
}

func NewService(subjects *repository.SubjectRepository, classes *repository.ClassRepository) *Service {
	return &Service{subjects: subjects, classes: classes}
}

func (s *Service) checkClass(ctx context.Context, id int64) error {
	_, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateSubjectRequest) (*domain.Subject, error) {
	if err := s.checkClass(ctx, req.ClassID); err != nil {
		return nil, err
	}

	subject := &domain.Subject{Name: req.Name, ClassID: req.ClassID}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *Service) List(ctx context.Context, classID *int64) ([]domain.Subject, error) {
	if classID != nil {
		if err := s.checkClass(ctx, *classID); err != nil {
			return nil, err
		}
	}
	return s.subjects.List(ctx, classID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSubjectRequest) (*domain.Subject, error) {
	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClassID != nil {
		if err := s.checkClass(ctx, *req.ClassID); err != nil {
			return nil, err
		}
		subject.ClassID = *req.ClassID
	}
	if req.Name != nil {
		subject.Name = *req.Name
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.subjects.Delete(ctx, id)
}
