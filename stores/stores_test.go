// SPDX-License-Identifier: GPL-3.0-only

package stores

import (
	"path/filepath"
	"quillbox-server/models"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Keep argon2 cheap for tests; the hashing contract is covered in crypto.
	t.Setenv("ARGON2_MEMORY", "8192")
	t.Setenv("ARGON2_TIME", "1")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection so the in-memory database is shared by all queries.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newFileTestDB backs the database with a file so concurrent writers
// exercise the real unique-index race instead of a shared-cache artifact.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("ARGON2_MEMORY", "8192")
	t.Setenv("ARGON2_TIME", "1")

	path := filepath.Join(t.TempDir(), "stores_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(10000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
