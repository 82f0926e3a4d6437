package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/lord-game/internal/errors"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// errorStatus 根据业务错误码映射HTTP状态码
func errorStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrPlayerNotFound, errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrDuplicateName, errors.ErrAlreadyExists, errors.ErrAlreadyMarried:
		return http.StatusConflict
	case errors.ErrPlayerDead, errors.ErrNoForestFights, errors.ErrOpponentDead,
		errors.ErrInsufficientGold, errors.ErrNoOpponents:
		return http.StatusUnprocessableEntity
	case errors.ErrInvalidName, errors.ErrInvalidParam:
		return http.StatusBadRequest
	case errors.ErrAuthentication, errors.ErrTokenExpired, errors.ErrTokenInvalid:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError 写出业务错误
func respondError(c *gin.Context, code string, err error) {
	c.JSON(errorStatus(err), ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
