package services

import (
	"path/filepath"
	"testing"

	"github.com/chroniclehq/chronicle/pkg/internal/cache"
	"github.com/chroniclehq/chronicle/pkg/internal/database"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chronicle.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	return db
}

func testStore(t *testing.T) *ristretto_store.RistrettoStore {
	t.Helper()

	st, err := cache.NewStore()
	require.NoError(t, err)

	return st
}
