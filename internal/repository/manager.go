package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Manager 仓储管理器，提供所有仓储的统一访问入口
type Manager struct {
	db *gorm.DB

	// 仓储实例（懒加载）
	playerOnce sync.Once
	player     PlayerRepository

	newsOnce sync.Once
	news     NewsRepository

	gameStateOnce sync.Once
	gameState     GameStateRepository

	sessionOnce sync.Once
	session     SessionRepository
}

// NewManager 创建仓储管理器
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Player 角色仓储
func (m *Manager) Player() PlayerRepository {
	m.playerOnce.Do(func() {
		m.player = NewPlayerRepository(m.db)
	})
	return m.player
}

// News 新闻仓储
func (m *Manager) News() NewsRepository {
	m.newsOnce.Do(func() {
		m.news = NewNewsRepository(m.db)
	})
	return m.news
}

// GameState 全局状态仓储
func (m *Manager) GameState() GameStateRepository {
	m.gameStateOnce.Do(func() {
		m.gameState = NewGameStateRepository(m.db, m.Player())
	})
	return m.gameState
}

// Session 会话仓储
func (m *Manager) Session() SessionRepository {
	m.sessionOnce.Do(func() {
		m.session = NewSessionRepository(m.db)
	})
	return m.session
}

// DB 底层数据库连接
func (m *Manager) DB() *gorm.DB {
	return m.db
}
