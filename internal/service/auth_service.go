package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/game"
	"github.com/wfunc/lord-game/internal/models"
	"github.com/wfunc/lord-game/internal/repository"
	"github.com/wfunc/lord-game/internal/utils"
	"go.uber.org/zap"
)

// 角色名只允许字母、数字和空格
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// authService 认证服务实现
type authService struct {
	playerRepo  repository.PlayerRepository
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	log         *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	playerRepo repository.PlayerRepository,
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Register 创建新角色
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnknown, "密码哈希失败")
	}

	player := &models.Player{
		Name:         name,
		PasswordHash: hash,
		Level:        game.StartingLevel,
		Gold:         game.StartingGold,
		MaxHP:        game.StartingHP,
		CurrentHP:    game.StartingHP,
		Attack:       game.StartingAttack,
		Defense:      game.StartingDefense,
		ForestFights: game.MaxDailyForestFights,
		Alive:        true,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.log.Info("新角色进入王国",
		zap.String("name", player.Name),
		zap.Uint("player_id", player.ID))

	return s.issueTokens(ctx, player, req.IP)
}

// Login 登录已有角色
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	player, err := s.playerRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}

	// 空哈希表示角色未设置密码
	ok, err := utils.VerifyPassword(req.Password, player.PasswordHash)
	if err != nil || !ok {
		s.log.Warn("登录失败", zap.String("name", req.Name))
		return nil, errors.New(errors.ErrAuthentication, "角色名或密码错误")
	}

	player.LastLogin = time.Now()
	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, player, req.IP)
}

// Logout 登出并销毁会话
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return errors.Wrap(err, errors.ErrTokenInvalid, "无效的令牌")
	}
	return s.sessionRepo.DeleteByPlayer(ctx, claims.PlayerID)
}

// ValidateToken 验证令牌并检查会话有效性
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		if err == utils.ErrExpiredToken {
			return nil, errors.New(errors.ErrTokenExpired, "令牌已过期")
		}
		return nil, errors.Wrap(err, errors.ErrTokenInvalid, "无效的令牌")
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, errors.New(errors.ErrTokenInvalid, "会话不存在")
	}
	if session.IsExpired() {
		return nil, errors.New(errors.ErrTokenExpired, "会话已过期")
	}

	_ = s.sessionRepo.Touch(ctx, session.SessionID)

	return &TokenClaims{
		PlayerID:  claims.PlayerID,
		Name:      claims.Name,
		SessionID: claims.SessionID,
	}, nil
}

// issueTokens 创建会话并签发令牌
func (s *authService) issueTokens(ctx context.Context, player *models.Player, ip string) (*AuthResponse, error) {
	sessionID := uuid.New().String()

	accessToken, err := s.jwtManager.GenerateAccessToken(player.ID, player.Name, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnknown, "生成访问令牌失败")
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(player.ID, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnknown, "生成刷新令牌失败")
	}

	expiry := s.jwtManager.GetTokenExpiry("access")
	session := &models.PlayerSession{
		PlayerID:     player.ID,
		SessionID:    sessionID,
		Token:        accessToken,
		IP:           ip,
		ExpireAt:     time.Now().Add(expiry),
		LastActiveAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Player:       player,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(expiry.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// validateName 校验角色名
func validateName(name string) error {
	if name == "" || len(name) > 20 {
		return errors.New(errors.ErrInvalidName, "角色名长度必须在1到20之间")
	}
	if !namePattern.MatchString(name) {
		return errors.New(errors.ErrInvalidName, "角色名只能包含字母、数字和空格")
	}
	return nil
}
