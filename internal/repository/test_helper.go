package repository

import (
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
func SetupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Player{},
		&models.News{},
		&models.GameState{},
		&models.PlayerSession{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}
