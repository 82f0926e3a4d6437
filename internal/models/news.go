package models

import (
	"time"
)

// News 游戏新闻表（只追加，不修改）
type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定News表名
func (News) TableName() string {
	return "news"
}
