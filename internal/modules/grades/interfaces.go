package grades

import (
	"context"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

type GradeRepositoryInterface interface {
	Create(ctx context.Context, g *domain.Grade) error
	GetByID(ctx context.Context, id int64) (*domain.Grade, error)
	List(ctx context.Context, filter repository.GradeFilter) ([]domain.Grade, error)
	Update(ctx context.Context, g *domain.Grade) error
	Delete(ctx context.Context, id int64) error
}

type UserRepositoryInterface interface {
	GetByIDAndRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error)
}

type SubjectRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Subject, error)
	IDsForTeacher(ctx context.Context, teacherID int64) ([]int64, error)
}
