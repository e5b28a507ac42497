package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/database"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		EnvType:        "LOCAL",
		DBDriver:       "sqlite",
		DBPath:         ":memory:",
		DBLogLevel:     "silent",
		JWTSecretKey:   "test-secret",
		TokenTTL:       time.Hour,
		PublicDir:      t.TempDir(),
		UploadDriver:   "local",
		UploadMaxBytes: 5 << 20,
		CacheTTL:       time.Minute,
	}
}

// newTestDB 每个测试使用独立的内存数据库
func newTestDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()

	cfg := newTestConfig(t)
	pool, err := database.NewConnectionPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, database.AutoMigrate(pool.GetDB()))
	return pool.GetDB(), cfg
}

func newSeededDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()

	db, cfg := newTestDB(t)
	require.NoError(t, database.Seed(db, "admin@ecomstore.com", "admin123"))
	return db, cfg
}
