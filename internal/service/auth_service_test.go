package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/repository"
	"github.com/wfunc/lord-game/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthServiceTestSuite 认证服务测试套件
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	playerRepo := repository.NewPlayerRepository(suite.db)
	sessionRepo := repository.NewSessionRepository(suite.db)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	suite.service = NewAuthService(playerRepo, sessionRepo, jwtManager, zap.NewNop())
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// TestRegister 注册新角色并获得初始属性
func (suite *AuthServiceTestSuite) TestRegister() {
	ctx := context.Background()

	resp, err := suite.service.Register(ctx, &RegisterRequest{
		Name:     "Galahad",
		Password: "secret",
	})
	suite.NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)

	p := resp.Player
	suite.Equal("Galahad", p.Name)
	suite.Equal(1, p.Level)
	suite.Equal(100, p.Gold)
	suite.Equal(20, p.MaxHP)
	suite.Equal(20, p.CurrentHP)
	suite.Equal(5, p.Attack)
	suite.Equal(2, p.Defense)
	suite.Equal(10, p.ForestFights)
	suite.True(p.Alive)
	suite.NotEmpty(p.PasswordHash)
}

// TestRegister_InvalidName 非法角色名
func (suite *AuthServiceTestSuite) TestRegister_InvalidName() {
	ctx := context.Background()

	cases := []string{"", "   ", "bad!name", "名字", "this name is way too long for a hero"}
	for _, name := range cases {
		_, err := suite.service.Register(ctx, &RegisterRequest{Name: name})
		suite.Error(err, "name=%q", name)
		suite.True(errors.Is(err, errors.ErrInvalidName), "name=%q", name)
	}
}

// TestRegister_DuplicateName 重名注册被拒绝
func (suite *AuthServiceTestSuite) TestRegister_DuplicateName() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, &RegisterRequest{Name: "Hero"})
	suite.NoError(err)

	_, err = suite.service.Register(ctx, &RegisterRequest{Name: "hero"})
	suite.True(errors.Is(err, errors.ErrDuplicateName))
}

// TestLogin 密码登录
func (suite *AuthServiceTestSuite) TestLogin() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, &RegisterRequest{Name: "Hero", Password: "secret"})
	suite.NoError(err)

	resp, err := suite.service.Login(ctx, &LoginRequest{Name: "Hero", Password: "secret"})
	suite.NoError(err)
	suite.Equal("Hero", resp.Player.Name)

	_, err = suite.service.Login(ctx, &LoginRequest{Name: "Hero", Password: "wrong"})
	suite.True(errors.Is(err, errors.ErrAuthentication))
}

// TestLogin_NoPassword 未设置密码的角色只有空密码可登录
func (suite *AuthServiceTestSuite) TestLogin_NoPassword() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, &RegisterRequest{Name: "Open Hero"})
	suite.NoError(err)

	resp, err := suite.service.Login(ctx, &LoginRequest{Name: "Open Hero", Password: ""})
	suite.NoError(err)
	suite.Equal("Open Hero", resp.Player.Name)

	_, err = suite.service.Login(ctx, &LoginRequest{Name: "Open Hero", Password: "whatever"})
	suite.True(errors.Is(err, errors.ErrAuthentication))
}

// TestValidateToken 令牌验证与登出
func (suite *AuthServiceTestSuite) TestValidateToken() {
	ctx := context.Background()

	resp, err := suite.service.Register(ctx, &RegisterRequest{Name: "Hero"})
	suite.NoError(err)

	claims, err := suite.service.ValidateToken(ctx, resp.AccessToken)
	suite.NoError(err)
	suite.Equal(resp.Player.ID, claims.PlayerID)
	suite.Equal("Hero", claims.Name)

	// 登出后会话失效
	suite.NoError(suite.service.Logout(ctx, resp.AccessToken))
	_, err = suite.service.ValidateToken(ctx, resp.AccessToken)
	suite.Error(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
