package auth

import (
	"context"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface — the token ledger. DB is exposed for the
// rotation transaction.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DB() *gorm.DB
}

type tokenIssuer interface {
	GenerateAccessToken(userID int64, role string) (string, error)
	GenerateRefreshToken(userID int64) (token string, jti string, err error)
	Verify(token, expectedType string) (*jwtsvc.Claims, error)
}
