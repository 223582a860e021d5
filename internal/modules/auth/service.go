package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolrecords/internal/domain"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

// Service contains all business logic for authentication and the
// refresh-token lifecycle.
type Service struct {
	users      UserRepositoryInterface
	tokens     RefreshTokenRepositoryInterface
	jwt        tokenIssuer
	refreshTTL time.Duration
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	jwt tokenIssuer,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and opens a new session: one access token plus a
// freshly recorded refresh token. Unknown email and wrong password produce
// the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, jti, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		JTI:       jti,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		// A hash collision would land here via the unique index. Not
		// client-recoverable; surfaces as a 500.
		return nil, err
	}

	user.PasswordHash = ""
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         user,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// access/refresh pair is issued. Single-use semantics; of two concurrent
// calls with the same token exactly one wins. Lookup, revoke and insert run
// in one transaction so the loser observes the token as already rotated.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	claims, err := s.jwt.Verify(rawToken, jwtsvc.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	hash := hashToken(rawToken)
	now := time.Now()

	var result *TokenPair
	var ledgerExpired bool

	err = s.tokens.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			// Row lock closes the concurrent-refresh race on Postgres.
			// SQLite serializes writers on its own.
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current domain.RefreshToken
		if err := q.Where("token_hash = ? AND user_id = ? AND revoked = ?", hash, claims.UserID, false).
			First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}

		revoke := map[string]any{"revoked": true, "revoked_at": now}
		if current.IsExpired(now) {
			// The ledger is authoritative over the signed exp claim:
			// commit the revocation, then fail.
			ledgerExpired = true
			return tx.Model(&domain.RefreshToken{}).Where("id = ?", current.ID).Updates(revoke).Error
		}

		var user domain.User
		if err := tx.First(&user, current.UserID).Error; err != nil {
			return err
		}

		accessToken, err := s.jwt.GenerateAccessToken(user.ID, string(user.Role))
		if err != nil {
			return err
		}
		newRefresh, newJTI, err := s.jwt.GenerateRefreshToken(user.ID)
		if err != nil {
			return err
		}

		if err := tx.Model(&domain.RefreshToken{}).Where("id = ?", current.ID).Updates(revoke).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.RefreshToken{
			UserID:    user.ID,
			TokenHash: hashToken(newRefresh),
			JTI:       newJTI,
			ExpiresAt: now.Add(s.refreshTTL),
		}).Error; err != nil {
			return err
		}

		user.PasswordHash = ""
		result = &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: newRefresh,
			TokenType:    "bearer",
			User:         &user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ledgerExpired {
		return nil, ErrRefreshTokenExpired
	}
	return result, nil
}

// Logout revokes every active refresh token of the user. Idempotent; zero
// active tokens is still a success.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
