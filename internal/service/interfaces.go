package service

import (
	"context"

	"github.com/wfunc/lord-game/internal/game"
	"github.com/wfunc/lord-game/internal/models"
)

// AuthService 认证服务接口
type AuthService interface {
	// 注册登录
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// 验证
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// GameService 游戏服务接口
type GameService interface {
	// 角色
	GetPlayer(ctx context.Context, playerID uint) (*models.Player, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.Player, error)
	LatestNews(ctx context.Context, limit int) ([]models.News, error)

	// 森林
	ForestEncounter(ctx context.Context, playerID uint) (*game.EncounterResult, *models.Player, error)

	// 决斗
	ListOpponents(ctx context.Context, playerID uint) ([]models.PlayerInfo, error)
	Duel(ctx context.Context, challengerID, targetID uint) (*game.DuelResult, *models.Player, error)

	// 酒馆
	TavernDrink(ctx context.Context, playerID uint) (*DrinkResult, error)
	FlirtWithVioletta(ctx context.Context, playerID uint) (*FlirtResult, error)
}

// ResetService 每日重置服务接口
type ResetService interface {
	// EnsureInitialized 首次启动时登记当天日期
	EnsureInitialized(ctx context.Context) error
	// MaybeReset 跨天时执行每日重置，返回是否执行
	MaybeReset(ctx context.Context) (bool, error)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=20"`
	Password string `json:"password"`
	IP       string `json:"-"` // 客户端IP，由handler设置
}

// LoginRequest 登录请求
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
	IP       string `json:"-"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	Player       *models.Player `json:"player"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	TokenType    string         `json:"token_type"`
}

// TokenClaims JWT Claims
type TokenClaims struct {
	PlayerID  uint   `json:"player_id"`
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
}

// DrinkResult 酒馆喝酒结果
type DrinkResult struct {
	GoldSpent int `json:"gold_spent"`
	HPHealed  int `json:"hp_healed"`
	CurrentHP int `json:"current_hp"`
	MaxHP     int `json:"max_hp"`
}

// FlirtResult 与Violetta调情结果
type FlirtResult struct {
	Romance     int    `json:"romance"`
	JustMarried bool   `json:"just_married"`
	Message     string `json:"message"`
}
