package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/lord-game/internal/service"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 创建新角色
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	// 获取客户端IP
	req.IP = c.ClientIP()

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "REGISTER_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login 登录已有角色
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	req.IP = c.ClientIP()

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "LOGIN_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout 登出并清除会话
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get("token")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "未登录",
		})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token.(string)); err != nil {
		respondError(c, "LOGOUT_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "已登出"})
}
