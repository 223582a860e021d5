package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolrecords/internal/domain"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockTokenRepo) DB() *gorm.DB {
	return nil // rotation paths are covered by handler tests on a real DB
}

func newTestService(users *mockUserRepo, tokens *mockTokenRepo) *Service {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	return NewService(users, tokens, jwt, time.Hour)
}

func TestRegisterSuccess(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(users, tokens)
	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@X.com",
		Password: "secret123",
		Role:     domain.RoleStudent,
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	// The duplicate check runs on the normalized address, so a re-register
	// with different casing still collides.
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(true, nil)

	svc := newTestService(users, tokens)
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "ALICE@x.com",
		Password: "secret123",
		Role:     domain.RoleStudent,
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(new(mockUserRepo), new(mockTokenRepo))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@x.com",
		Password: "secret123",
		Role:     domain.UserRole("superuser"),
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "alice@x.com").Return(&domain.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
	}, nil)
	tokens.On("Create", mock.Anything, mock.MatchedBy(func(rt *domain.RefreshToken) bool {
		return rt.UserID == 1 && len(rt.TokenHash) == 64 && !rt.Revoked
	})).Return(nil)

	svc := newTestService(users, tokens)
	pair, err := svc.Login(context.Background(), LoginRequest{Email: "alice@x.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Empty(t, pair.User.PasswordHash)
	tokens.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "alice@x.com").Return(&domain.User{
		ID:           1,
		Email:        "alice@x.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
	}, nil)

	svc := newTestService(users, tokens)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "alice@x.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	users.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(users, tokens)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.com", Password: "whatever"})

	// Same sentinel as a wrong password: no user-enumeration oracle.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsNonRefreshToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	svc := NewService(users, tokens, jwt, time.Hour)

	access, err := jwt.GenerateAccessToken(1, "student")
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestService(new(mockUserRepo), new(mockTokenRepo))

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutRevokesAll(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	tokens.On("RevokeAllForUser", mock.Anything, int64(7)).Return(nil)

	svc := newTestService(users, tokens)
	assert.NoError(t, svc.Logout(context.Background(), 7))
	tokens.AssertExpectations(t)
}

func TestGetCurrentUserStripsHash(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{
		ID:           3,
		PasswordHash: "bcrypt-hash",
		Role:         domain.RoleTeacher,
	}, nil)

	svc := newTestService(users, tokens)
	user, err := svc.GetCurrentUser(context.Background(), 3)

	assert.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}
