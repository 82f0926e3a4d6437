package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// JWTTestSuite JWT工具测试套件
type JWTTestSuite struct {
	suite.Suite
	manager *JWTManager
}

func (suite *JWTTestSuite) SetupTest() {
	suite.manager = NewJWTManager("test-secret-key", time.Hour, 24*time.Hour)
}

// 测试生成并验证访问令牌
func (suite *JWTTestSuite) TestGenerateAndValidateAccessToken() {
	token, err := suite.manager.GenerateAccessToken(42, "Galahad", "session-1")
	suite.NoError(err)
	suite.NotEmpty(token)

	claims, err := suite.manager.ValidateToken(token)
	suite.NoError(err)
	suite.Equal(uint(42), claims.PlayerID)
	suite.Equal("Galahad", claims.Name)
	suite.Equal("session-1", claims.SessionID)
	suite.Equal("access", claims.TokenType)
	suite.Equal("lord-game", claims.Issuer)
}

// 测试过期令牌
func (suite *JWTTestSuite) TestExpiredToken() {
	manager := NewJWTManager("test-secret-key", -time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(1, "Hero", "s")
	suite.NoError(err)

	_, err = manager.ValidateToken(token)
	suite.ErrorIs(err, ErrExpiredToken)
}

// 测试错误密钥签发的令牌
func (suite *JWTTestSuite) TestWrongSecret() {
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := other.GenerateAccessToken(1, "Hero", "s")
	suite.NoError(err)

	_, err = suite.manager.ValidateToken(token)
	suite.Error(err)
}

// 测试刷新令牌换发访问令牌
func (suite *JWTTestSuite) TestRefreshAccessToken() {
	refresh, err := suite.manager.GenerateRefreshToken(7, "session-7")
	suite.NoError(err)

	access, err := suite.manager.RefreshAccessToken(refresh, "Lancelot")
	suite.NoError(err)

	claims, err := suite.manager.ValidateToken(access)
	suite.NoError(err)
	suite.Equal(uint(7), claims.PlayerID)
	suite.Equal("Lancelot", claims.Name)
	suite.Equal("session-7", claims.SessionID)
	suite.Equal("access", claims.TokenType)
}

// 测试访问令牌不能用于刷新
func (suite *JWTTestSuite) TestRefreshWithAccessToken() {
	access, err := suite.manager.GenerateAccessToken(7, "Hero", "s")
	suite.NoError(err)

	_, err = suite.manager.RefreshAccessToken(access, "Hero")
	suite.Error(err)
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTTestSuite))
}
