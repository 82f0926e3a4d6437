package models

import (
	"time"
)

// 全局状态键
const (
	StateKeyLastReset = "last_reset" // 上次每日重置的日期（YYYY-MM-DD）
)

// GameState 全局游戏状态表（键值对）
type GameState struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定GameState表名
func (GameState) TableName() string {
	return "game_state"
}
