package repository

import (
	"context"
	stderrors "errors"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameStateRepository 全局游戏状态仓储接口
type GameStateRepository interface {
	BaseRepository
	Get(ctx context.Context, key string) (string, error)
	EnsureLastReset(ctx context.Context, today string) error
	MaybeDailyReset(ctx context.Context, today string, forestFights int, message string) (bool, error)
}

// gameStateRepo 全局游戏状态仓储实现
type gameStateRepo struct {
	*BaseRepo
	players PlayerRepository
}

// NewGameStateRepository 创建全局游戏状态仓储
func NewGameStateRepository(db *gorm.DB, players PlayerRepository) GameStateRepository {
	return &gameStateRepo{
		BaseRepo: &BaseRepo{db: db},
		players:  players,
	}
}

// Get 读取状态值，不存在时返回 ErrNotFound
func (r *gameStateRepo) Get(ctx context.Context, key string) (string, error) {
	var state models.GameState
	err := r.db.WithContext(ctx).First(&state, "key = ?", key).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New(errors.ErrNotFound, key)
		}
		return "", errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return state.Value, nil
}

// EnsureLastReset 确保重置标记存在；已存在时不做任何修改。
// 进程首次启动建库时写入当天日期，当天不再触发重置。
func (r *gameStateRepo) EnsureLastReset(ctx context.Context, today string) error {
	state := &models.GameState{
		Key:   models.StateKeyLastReset,
		Value: today,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(state).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert)
	}
	return nil
}

// MaybeDailyReset 若重置标记早于今天，则在单个事务内完成每日重置：
// 先对标记做条件更新（CAS），抢到标记的进程才执行批量复活与新闻写入。
// 并发的第二次调用会因标记已是今天而成为空操作，返回 false。
func (r *gameStateRepo) MaybeDailyReset(ctx context.Context, today string, forestFights int, message string) (bool, error) {
	performed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 标记CAS：只有存储的日期早于今天才会更新成功。
		// ISO日期的字典序与时间序一致。
		result := tx.Model(&models.GameState{}).
			Where("key = ? AND value < ?", models.StateKeyLastReset, today).
			Update("value", today)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrDatabaseUpdate)
		}
		if result.RowsAffected == 0 {
			// 标记已是今天（或被并发进程抢先），无需重置
			return nil
		}

		// 批量复活：恢复战斗次数、存活状态和生命值
		if err := r.players.ResetAllDaily(tx, forestFights); err != nil {
			return err
		}

		// 重置新闻与标记更新同属一个事务
		if err := appendNewsTx(tx, message); err != nil {
			return err
		}

		performed = true
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, errors.ErrTransaction)
	}
	return performed, nil
}
