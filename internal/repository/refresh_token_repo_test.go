package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolrecords/internal/database"
	"schoolrecords/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:repotest-" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "a@x.com", domain.RoleStudent)

	token := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: "aaaa",
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, token))

	found, err := repo.FindActive(ctx, user.ID, "aaaa")
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)

	// Wrong hash or wrong user both miss.
	_, err = repo.FindActive(ctx, user.ID, "bbbb")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindActive(ctx, user.ID+1, "aaaa")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Revoke(ctx, token.ID))
	_, err = repo.FindActive(ctx, user.ID, "aaaa")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Revoking again is a no-op.
	assert.NoError(t, repo.Revoke(ctx, token.ID))
}

func TestRevokeAllForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "a@x.com", domain.RoleStudent)
	other := createUser(t, db, "b@x.com", domain.RoleStudent)

	for i, hash := range []string{"h1", "h2"} {
		require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
			UserID:    user.ID,
			TokenHash: hash,
			JTI:       uuid.NewString(),
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
		UserID:    other.ID,
		TokenHash: "h3",
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.RevokeAllForUser(ctx, user.ID))

	_, err := repo.FindActive(ctx, user.ID, "h1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindActive(ctx, user.ID, "h2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The other user's token survives.
	_, err = repo.FindActive(ctx, other.ID, "h3")
	assert.NoError(t, err)
}

func TestDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "a@x.com", domain.RoleStudent)

	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: "old",
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: "fresh",
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindActive(ctx, user.ID, "fresh")
	assert.NoError(t, err)
}
