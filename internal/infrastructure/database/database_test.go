package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	"github.com/hellosarowarhn-boop/ecomm/utils"
)

func newTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := NewConnectionPool(&config.Config{DBDriver: "sqlite", DBPath: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestNewConnectionPoolSqlite(t *testing.T) {
	pool := newTestPool(t)

	assert.Equal(t, 1, pool.MaxOpenConns)
	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", stats["driver"])
	assert.Equal(t, 1, stats["max_open_connections"])
}

func TestNewConnectionPoolUnknownDriver(t *testing.T) {
	_, err := NewConnectionPool(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateModes(t *testing.T) {
	db := newTestPool(t).GetDB()

	require.NoError(t, Migrate(db, "auto"))
	for _, model := range allModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}

	require.NoError(t, db.Create(&models.Admin{Email: "a@b.c", Password: "x", Role: models.RoleCoAdmin}).Error)
	require.NoError(t, Migrate(db, "drop"))

	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Error(t, Migrate(db, "sideways"))
}

func TestSeed(t *testing.T) {
	db := newTestPool(t).GetDB()
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, Seed(db, " Admin@Example.com ", "secret123"))
	// 重复执行不产生重复数据
	require.NoError(t, Seed(db, "other@example.com", "secret123"))

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)
	assert.Equal(t, models.RoleSuperAdmin, admins[0].Role)
	assert.True(t, utils.CheckPasswordHash("secret123", admins[0].Password))

	var products []models.Product
	require.NoError(t, db.Order("id ASC").Find(&products).Error)
	require.Len(t, products, 3)
	assert.Equal(t, models.ProductTypeCombo, products[2].Type)
	assert.Equal(t, "59.99", products[2].OfferPrice.StringFixed(2))
	assert.Equal(t, 2, products[2].BottleQuantity)

	var settings models.SiteSettings
	require.NoError(t, db.First(&settings, models.SettingsID).Error)
	assert.Equal(t, models.DefaultSiteName, settings.SiteName)
}

func TestParseLogLevel(t *testing.T) {
	assert.NotEqual(t, parseLogLevel("silent"), parseLogLevel("info"))
	assert.Equal(t, parseLogLevel("warn"), parseLogLevel("unknown"))
}
