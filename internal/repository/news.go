package repository

import (
	"context"
	"time"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/gorm"
)

// NewsRepository 新闻仓储接口（只追加日志）
type NewsRepository interface {
	BaseRepository
	Append(ctx context.Context, message string) error
	Latest(ctx context.Context, limit int) ([]models.News, error)
}

// newsRepo 新闻仓储实现
type newsRepo struct {
	*BaseRepo
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Append 追加一条新闻
func (r *newsRepo) Append(ctx context.Context, message string) error {
	news := &models.News{
		Date:    time.Now(),
		Message: message,
	}
	if err := r.db.WithContext(ctx).Create(news).Error; err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert)
	}
	return nil
}

// appendTx 在给定事务内追加一条新闻
func appendNewsTx(tx *gorm.DB, message string) error {
	news := &models.News{
		Date:    time.Now(),
		Message: message,
	}
	if err := tx.Create(news).Error; err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert)
	}
	return nil
}

// Latest 获取最近的新闻，按时间正序返回（最旧在前）
func (r *newsRepo) Latest(ctx context.Context, limit int) ([]models.News, error) {
	var items []models.News
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}

	// 反转为正序
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}
