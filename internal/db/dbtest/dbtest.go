// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"control_gastos/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh, migrated in-memory SQLite database closed at test cleanup
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:", true)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
