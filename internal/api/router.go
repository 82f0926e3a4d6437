package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/lord-game/internal/config"
	"github.com/wfunc/lord-game/internal/middleware"
	"github.com/wfunc/lord-game/internal/service"
	"go.uber.org/zap"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	authHandler    *AuthHandler
	playerHandler  *PlayerHandler
	wsHandler      *WebSocketHandler
	authMiddleware *middleware.AuthMiddleware
	wsPath         string
	log            *zap.Logger
}

// NewRouter 创建路由器
// wsCfg 配置文字界面WebSocket门户，nil或空路径使用默认值
func NewRouter(auth service.AuthService, game service.GameService, reset service.ResetService, wsCfg *config.WebSocketConfig, log *zap.Logger) *Router {
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	router := &Router{
		engine:         engine,
		authHandler:    NewAuthHandler(auth),
		playerHandler:  NewPlayerHandler(game),
		wsHandler:      NewWebSocketHandler(auth, game, reset, wsCfg, log),
		authMiddleware: middleware.NewAuthMiddleware(auth),
		log:            log,
	}
	if wsCfg != nil {
		router.wsPath = wsCfg.Path
	}
	if router.wsPath == "" {
		router.wsPath = "/ws/door"
	}

	router.setupRoutes()
	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// 文字界面入口
	r.engine.GET(r.wsPath, r.wsHandler.Play)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 认证相关路由（不需要认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)

			authRequired := auth.Group("")
			authRequired.Use(r.authMiddleware.RequireAuth())
			{
				authRequired.POST("/logout", r.authHandler.Logout)
			}
		}

		// 公共只读路由
		v1.GET("/leaderboard", r.playerHandler.Leaderboard)
		v1.GET("/news", r.playerHandler.News)

		// 游戏路由（需要认证）
		gameGroup := v1.Group("/game")
		gameGroup.Use(r.authMiddleware.RequireAuth())
		{
			gameGroup.GET("/profile", r.playerHandler.Profile)
			gameGroup.POST("/forest/fight", r.playerHandler.ForestFight)
			gameGroup.GET("/duel/opponents", r.playerHandler.Opponents)
			gameGroup.POST("/duel", r.playerHandler.Duel)
			gameGroup.POST("/tavern/drink", r.playerHandler.TavernDrink)
			gameGroup.POST("/tavern/flirt", r.playerHandler.Flirt)
		}
	}
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Engine 获取Gin引擎
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
