package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolrecords/internal/domain"
)

func TestConnectSQLite(t *testing.T) {
	dsn := "file:dbtest-" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := Connect(dsn)
	require.NoError(t, err)

	// The named driver must actually be registered, not just configured.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	require.NoError(t, Migrate(db))

	// Schema is usable end to end.
	u := &domain.User{Name: "T", Email: "t@x.com", PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, db.Create(u).Error)
	assert.NotZero(t, u.ID)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
