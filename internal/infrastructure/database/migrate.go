package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// allModels 需要迁移的全部模型
func allModels() []interface{} {
	return []interface{}{
		&models.Admin{},
		&models.Product{},
		&models.Order{},
		&models.SiteSettings{},
	}
}

// Migrate 根据迁移模式执行数据库迁移
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "drop":
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
		return dropAndRecreateTables(db)
	case "auto", "":
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unsupported migration mode %q", mode)
	}
}

// AutoMigrate 自动迁移所有模型（只添加新列和新表）
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("数据库迁移完成")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	for _, model := range allModels() {
		if err := db.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return AutoMigrate(db)
}
