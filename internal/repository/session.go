package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/gorm"
)

// SessionRepository 登录会话仓储接口
type SessionRepository interface {
	BaseRepository
	Create(ctx context.Context, session *models.PlayerSession) error
	FindByToken(ctx context.Context, token string) (*models.PlayerSession, error)
	Touch(ctx context.Context, sessionID string) error
	DeleteByPlayer(ctx context.Context, playerID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// sessionRepo 登录会话仓储实现
type sessionRepo struct {
	*BaseRepo
}

// NewSessionRepository 创建登录会话仓储
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建会话
func (r *sessionRepo) Create(ctx context.Context, session *models.PlayerSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert)
	}
	return nil
}

// FindByToken 根据令牌查找会话
func (r *sessionRepo) FindByToken(ctx context.Context, token string) (*models.PlayerSession, error) {
	var session models.PlayerSession
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrTokenInvalid)
		}
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	return &session, nil
}

// Touch 刷新会话活跃时间
func (r *sessionRepo) Touch(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.PlayerSession{}).
		Where("session_id = ?", sessionID).
		Update("last_active_at", time.Now()).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}
	return nil
}

// DeleteByPlayer 删除玩家的全部会话（登出）
func (r *sessionRepo) DeleteByPlayer(ctx context.Context, playerID uint) error {
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Delete(&models.PlayerSession{}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseDelete)
	}
	return nil
}

// DeleteExpired 清理过期会话，返回清理条数
func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expire_at < ?", time.Now()).
		Delete(&models.PlayerSession{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrDatabaseDelete)
	}
	return result.RowsAffected, nil
}
