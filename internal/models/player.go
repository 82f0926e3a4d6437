package models

import (
	"time"
)

// Player 玩家角色表
type Player struct {
	BaseModel
	Name         string    `gorm:"uniqueIndex;size:20;not null" json:"name"`
	PasswordHash string    `gorm:"size:255" json:"-"` // 空串表示未设置密码
	Level        int       `gorm:"default:1" json:"level"`
	Exp          int       `gorm:"default:0" json:"exp"`
	Gold         int       `gorm:"default:0" json:"gold"`
	CurrentHP    int       `gorm:"default:0" json:"current_hp"`
	MaxHP        int       `gorm:"default:0" json:"max_hp"`
	Attack       int       `gorm:"default:0" json:"attack"`
	Defense      int       `gorm:"default:0" json:"defense"`
	ForestFights int       `gorm:"default:0" json:"forest_fights"`
	Alive        bool      `gorm:"default:true" json:"alive"`
	Romance      int       `gorm:"default:0" json:"romance"`
	Spouse       string    `gorm:"size:20;default:''" json:"spouse"`
	LastLogin    time.Time `json:"last_login"`
}

// TableName 指定Player表名
func (Player) TableName() string {
	return "players"
}

// XPToNextLevel 升级所需经验值
func (p *Player) XPToNextLevel() int {
	return p.Level * 100
}

// ApplyDamage 扣减生命值并同步存活状态
func (p *Player) ApplyDamage(damage int) {
	p.CurrentHP -= damage
	if p.CurrentHP <= 0 {
		p.CurrentHP = 0
		p.Alive = false
	}
}

// Heal 恢复生命值，不超过上限
func (p *Player) Heal(amount int) int {
	before := p.CurrentHP
	p.CurrentHP += amount
	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
	return p.CurrentHP - before
}

// ClampHP 约束生命值到 [0, MaxHP] 并同步存活状态
func (p *Player) ClampHP() {
	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
	if p.CurrentHP <= 0 {
		p.CurrentHP = 0
		p.Alive = false
	} else {
		p.Alive = true
	}
}

// HasPassword 是否设置了密码
func (p *Player) HasPassword() bool {
	return p.PasswordHash != ""
}

// IsMarried 是否已婚
func (p *Player) IsMarried() bool {
	return p.Spouse != ""
}

// PlayerInfo 玩家列表/排行榜的精简信息
type PlayerInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}
