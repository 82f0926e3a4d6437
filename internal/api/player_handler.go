package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/lord-game/internal/middleware"
	"github.com/wfunc/lord-game/internal/service"
)

// PlayerHandler 角色与游戏处理器
type PlayerHandler struct {
	gameService service.GameService
}

// NewPlayerHandler 创建角色处理器
func NewPlayerHandler(gameService service.GameService) *PlayerHandler {
	return &PlayerHandler{
		gameService: gameService,
	}
}

// Profile 查询自己的角色
func (h *PlayerHandler) Profile(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	player, err := h.gameService.GetPlayer(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, "PLAYER_NOT_FOUND", err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// Leaderboard 排行榜
func (h *PlayerHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	players, err := h.gameService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "LEADERBOARD_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}

// News 最近的王国新闻
func (h *PlayerHandler) News(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.gameService.LatestNews(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "NEWS_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items})
}

// ForestFight 进入森林战斗一场
func (h *PlayerHandler) ForestFight(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	result, player, err := h.gameService.ForestEncounter(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, "FOREST_FIGHT_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"player": player,
	})
}

// Opponents 可挑战的玩家列表
func (h *PlayerHandler) Opponents(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	list, err := h.gameService.ListOpponents(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, "OPPONENTS_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opponents": list})
}

// DuelRequest 决斗请求
type DuelRequest struct {
	TargetID uint `json:"target_id" binding:"required"`
}

// Duel 挑战另一名玩家
func (h *PlayerHandler) Duel(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	var req DuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	result, player, err := h.gameService.Duel(c.Request.Context(), playerID, req.TargetID)
	if err != nil {
		respondError(c, "DUEL_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"player": player,
	})
}

// TavernDrink 酒馆喝酒
func (h *PlayerHandler) TavernDrink(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	result, err := h.gameService.TavernDrink(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, "DRINK_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Flirt 与Violetta调情
func (h *PlayerHandler) Flirt(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	result, err := h.gameService.FlirtWithVioletta(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, "FLIRT_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
