package database

import (
	"fmt"

	"github.com/wfunc/lord-game/internal/logger"
	"github.com/wfunc/lord-game/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	// 多进程共用SQLite文件时串行化迁移
	if dbPath := getDBPath(); dbPath != "" && dbPath != ":memory:" {
		lockFile, err := acquireMigrationLock(dbPath)
		if err != nil {
			return err
		}
		defer releaseMigrationLock(lockFile)
	}

	migrationModels := []interface{}{
		&models.Player{},
		&models.News{},
		&models.GameState{},
		&models.PlayerSession{},
	}

	for _, model := range migrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			logger.Error("表结构迁移失败",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Error(err),
			)
			return fmt.Errorf("迁移 %T 失败: %w", model, err)
		}
	}

	// 排行榜索引：按 (level desc, exp desc) 查询
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_players_level_exp ON players (level DESC, exp DESC)").Error; err != nil {
		return fmt.Errorf("创建排行榜索引失败: %w", err)
	}

	logger.Info("数据库迁移完成", zap.Int("models", len(migrationModels)))
	return nil
}
