// Package dbtest 为各包测试提供建好表的内存 SQLite。
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"homes-api/internal/core/database"
	"homes-api/internal/repo"
)

// Open 每次调用都是独立的库；单连接保证 :memory: 不会被连接池丢弃
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
