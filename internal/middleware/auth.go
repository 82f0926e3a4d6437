package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/lord-game/internal/service"
)

// AuthMiddleware JWT认证中间件
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth 需要认证的中间件
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "NO_TOKEN",
				"message": "缺少认证令牌",
			})
			c.Abort()
			return
		}

		// 验证令牌
		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "INVALID_TOKEN",
				"message": "无效的令牌",
				"details": err.Error(),
			})
			c.Abort()
			return
		}

		// 将角色信息存入上下文
		c.Set("playerID", claims.PlayerID)
		c.Set("playerName", claims.Name)
		c.Set("sessionID", claims.SessionID)
		c.Set("token", token)

		c.Next()
	}
}

// OptionalAuth 可选认证的中间件（不强制要求登录）
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token != "" {
			claims, err := m.authService.ValidateToken(c.Request.Context(), token)
			if err == nil {
				c.Set("playerID", claims.PlayerID)
				c.Set("playerName", claims.Name)
				c.Set("sessionID", claims.SessionID)
				c.Set("token", token)
			}
		}

		c.Next()
	}
}

// extractToken 从请求中提取令牌
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	// 1. 从Authorization Header获取 (Bearer Token)
	bearerToken := c.GetHeader("Authorization")
	if bearerToken != "" {
		parts := strings.Split(bearerToken, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// 2. 从X-Access-Token Header获取
	if token := c.GetHeader("X-Access-Token"); token != "" {
		return token
	}

	// 3. 从Query参数获取（用于WebSocket握手）
	if token := c.Query("token"); token != "" {
		return token
	}

	return ""
}

// GetPlayerID 从上下文获取角色ID
func GetPlayerID(c *gin.Context) (uint, bool) {
	if playerID, exists := c.Get("playerID"); exists {
		if id, ok := playerID.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

// GetPlayerName 从上下文获取角色名
func GetPlayerName(c *gin.Context) (string, bool) {
	if name, exists := c.Get("playerName"); exists {
		if n, ok := name.(string); ok {
			return n, true
		}
	}
	return "", false
}
