package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository 玩家仓储接口
type PlayerRepository interface {
	BaseRepository
	Create(ctx context.Context, player *models.Player) error
	FindByName(ctx context.Context, name string) (*models.Player, error)
	FindByID(ctx context.Context, id uint) (*models.Player, error)
	Save(ctx context.Context, player *models.Player) error
	SavePair(ctx context.Context, a, b *models.Player) error
	ListAlive(ctx context.Context, excludeID uint) ([]models.PlayerInfo, error)
	TopPlayers(ctx context.Context, limit int) ([]*models.Player, error)
	ResetAllDaily(tx *gorm.DB, forestFights int) error
}

// playerRepo 玩家仓储实现
type playerRepo struct {
	*BaseRepo
}

// NewPlayerRepository 创建玩家仓储
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建玩家。角色名不区分大小写唯一，冲突时返回 ErrDuplicateName。
func (r *playerRepo) Create(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Player{}).
			Where("LOWER(name) = LOWER(?)", player.Name).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrDatabaseQuery)
		}
		if count > 0 {
			return errors.New(errors.ErrDuplicateName, player.Name)
		}

		player.LastLogin = time.Now()
		if err := tx.Create(player).Error; err != nil {
			return errors.Wrap(err, errors.ErrDatabaseInsert)
		}
		return nil
	})
}

// FindByName 根据角色名查找玩家（不区分大小写）
func (r *playerRepo) FindByName(ctx context.Context, name string) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&player).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrPlayerNotFound, name)
		}
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return &player, nil
}

// FindByID 根据ID查找玩家
func (r *playerRepo) FindByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrPlayerNotFound)
		}
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return &player, nil
}

// mutableColumns 保存时覆盖的可变字段。密码哈希不在其中，
// 凭证变更不属于本仓储的职责。
func mutableColumns(p *models.Player) map[string]interface{} {
	return map[string]interface{}{
		"level":         p.Level,
		"exp":           p.Exp,
		"gold":          p.Gold,
		"current_hp":    p.CurrentHP,
		"max_hp":        p.MaxHP,
		"attack":        p.Attack,
		"defense":       p.Defense,
		"forest_fights": p.ForestFights,
		"alive":         p.Alive,
		"romance":       p.Romance,
		"spouse":        p.Spouse,
		"last_login":    time.Now(),
	}
}

// saveTx 在给定事务内写回一名玩家
func saveTx(tx *gorm.DB, p *models.Player) error {
	result := tx.Model(&models.Player{}).
		Where("id = ?", p.ID).
		Updates(mutableColumns(p))
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrDatabaseUpdate)
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrPlayerNotFound)
	}
	return nil
}

// Save 写回单个玩家的可变字段并刷新最后登录时间
func (r *playerRepo) Save(ctx context.Context, player *models.Player) error {
	return saveTx(r.db.WithContext(ctx), player)
}

// SavePair 在单个事务内原子地写回两名玩家（决斗结算专用）。
// 按ID升序加行锁，避免并发决斗互相死锁；任一更新失败则整体回滚。
func (r *playerRepo) SavePair(ctx context.Context, a, b *models.Player) error {
	first, second := a, b
	if b.ID < a.ID {
		first, second = b, a
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Player
		for _, p := range []*models.Player{first, second} {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&locked, p.ID).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.ErrPlayerNotFound)
				}
				return errors.Wrap(err, errors.ErrDatabaseQuery)
			}
		}

		if err := saveTx(tx, first); err != nil {
			return err
		}
		return saveTx(tx, second)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrTransaction)
	}
	return nil
}

// ListAlive 列出所有存活玩家（排除指定ID），按名称排序
func (r *playerRepo) ListAlive(ctx context.Context, excludeID uint) ([]models.PlayerInfo, error) {
	var infos []models.PlayerInfo
	err := r.db.WithContext(ctx).
		Model(&models.Player{}).
		Select("id, name, level").
		Where("alive = ? AND id != ?", true, excludeID).
		Order("name").
		Find(&infos).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return infos, nil
}

// TopPlayers 排行榜：按等级、经验降序
func (r *playerRepo) TopPlayers(ctx context.Context, limit int) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.WithContext(ctx).
		Order("level DESC, exp DESC").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return players, nil
}

// ResetAllDaily 在给定事务内批量重置全部玩家：恢复战斗次数、
// 复活并回满生命。由每日重置协调器在标记CAS成功后调用。
func (r *playerRepo) ResetAllDaily(tx *gorm.DB, forestFights int) error {
	err := tx.Model(&models.Player{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"forest_fights": forestFights,
			"alive":         true,
			"current_hp":    gorm.Expr("max_hp"),
		}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}
	return nil
}
