// Package repotest 为测试提供一次性的 SQLite 库（纯 Go 驱动，无需外部服务）
package repotest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-gorm-crud/internal/core/database"
	"go-gin-gorm-crud/internal/repo"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "crud.db") + "?_pragma=foreign_keys(1)"
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func NewStore(t testing.TB) *repo.Store {
	t.Helper()
	return repo.NewStore(NewDB(t))
}
