package models

import (
	"time"
)

// PlayerSession 玩家登录会话表（HTTP/WebSocket门户使用）
type PlayerSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlayerID     uint      `gorm:"index;not null" json:"player_id"`
	SessionID    string    `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	Token        string    `gorm:"uniqueIndex;size:255;not null" json:"token"`
	IP           string    `gorm:"size:50" json:"ip"`
	ExpireAt     time.Time `json:"expire_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定PlayerSession表名
func (PlayerSession) TableName() string {
	return "player_sessions"
}

// IsExpired 会话是否已过期
func (s *PlayerSession) IsExpired() bool {
	return time.Now().After(s.ExpireAt)
}
