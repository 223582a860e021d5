package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

// RefreshTokenRepository is the durable ledger behind refresh-token rotation.
// The rotation transaction itself lives in the auth service; these methods
// cover the non-transactional paths.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// DB exposes the underlying handle for the rotation transaction.
func (r *RefreshTokenRepository) DB() *gorm.DB { return r.db }

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindActive looks up a non-revoked entry by hash and owner. A not-found
// result is the normal invalid/used/foreign-token case, not a fault.
func (r *RefreshTokenRepository) FindActive(ctx context.Context, userID int64, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ? AND revoked = ?", hash, userID, false).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks an entry revoked. Idempotent: revoking an already-revoked
// entry matches zero rows and is not an error.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Updates(map[string]any{"revoked": true, "revoked_at": now}).Error
}

// RevokeAllForUser bulk-revokes every active entry for the user (logout).
// A single UPDATE keeps it atomic with respect to concurrent refreshes.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]any{"revoked": true, "revoked_at": now}).Error
}

// DeleteExpired removes entries past their expiry, see cmd/auth_cleanup.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
