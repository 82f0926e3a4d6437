package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorCode 错误码类型
type ErrorCode int

// 错误码定义（按模块分组）
const (
	// 通用错误 (1000-1999)
	ErrUnknown       ErrorCode = 1000
	ErrInvalidParam  ErrorCode = 1001
	ErrNotFound      ErrorCode = 1002
	ErrAlreadyExists ErrorCode = 1003
	ErrTimeout       ErrorCode = 1004
	ErrCanceled      ErrorCode = 1005

	// 玩家/战斗错误 (2000-2999)
	ErrDuplicateName    ErrorCode = 2000
	ErrPlayerNotFound   ErrorCode = 2001
	ErrPlayerDead       ErrorCode = 2002
	ErrNoForestFights   ErrorCode = 2003
	ErrNoOpponents      ErrorCode = 2004
	ErrOpponentDead     ErrorCode = 2005
	ErrInsufficientGold ErrorCode = 2006
	ErrInvalidName      ErrorCode = 2007
	ErrAlreadyMarried   ErrorCode = 2008

	// 存储错误 (5000-5999)
	ErrDatabaseConnect ErrorCode = 5000
	ErrDatabaseQuery   ErrorCode = 5001
	ErrDatabaseInsert  ErrorCode = 5002
	ErrDatabaseUpdate  ErrorCode = 5003
	ErrDatabaseDelete  ErrorCode = 5004
	ErrTransaction     ErrorCode = 5005
	ErrDataIntegrity   ErrorCode = 5006

	// 配置错误 (6000-6999)
	ErrConfigLoad     ErrorCode = 6000
	ErrConfigParse    ErrorCode = 6001
	ErrConfigValidate ErrorCode = 6002

	// 安全错误 (7000-7999)
	ErrAuthentication ErrorCode = 7000
	ErrTokenExpired   ErrorCode = 7001
	ErrTokenInvalid   ErrorCode = 7002
)

// 错误码消息映射
var errorMessages = map[ErrorCode]string{
	// 通用错误
	ErrUnknown:       "未知错误",
	ErrInvalidParam:  "无效的参数",
	ErrNotFound:      "资源未找到",
	ErrAlreadyExists: "资源已存在",
	ErrTimeout:       "操作超时",
	ErrCanceled:      "操作已取消",

	// 玩家/战斗错误
	ErrDuplicateName:    "角色名已被使用",
	ErrPlayerNotFound:   "角色不存在",
	ErrPlayerDead:       "角色已死亡",
	ErrNoForestFights:   "今日森林战斗次数已用尽",
	ErrNoOpponents:      "没有可挑战的对手",
	ErrOpponentDead:     "对手已经死亡",
	ErrInsufficientGold: "金币不足",
	ErrInvalidName:      "无效的角色名",
	ErrAlreadyMarried:   "已经结婚",

	// 存储错误
	ErrDatabaseConnect: "数据库连接失败",
	ErrDatabaseQuery:   "数据库查询失败",
	ErrDatabaseInsert:  "数据库插入失败",
	ErrDatabaseUpdate:  "数据库更新失败",
	ErrDatabaseDelete:  "数据库删除失败",
	ErrTransaction:     "事务处理失败",
	ErrDataIntegrity:   "数据完整性错误",

	// 配置错误
	ErrConfigLoad:     "配置加载失败",
	ErrConfigParse:    "配置解析失败",
	ErrConfigValidate: "配置验证失败",

	// 安全错误
	ErrAuthentication: "认证失败",
	ErrTokenExpired:   "令牌已过期",
	ErrTokenInvalid:   "无效的令牌",
}

// AppError 应用错误结构
type AppError struct {
	Code    ErrorCode    `json:"code"`            // 错误码
	Message string       `json:"message"`         // 错误消息
	Details string       `json:"details"`         // 详细信息
	Cause   error        `json:"-"`               // 原始错误
	Stack   []StackFrame `json:"stack,omitempty"` // 调用栈
}

// StackFrame 调用栈帧
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails 添加详细信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause 添加原因错误
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	if cause != nil && e.Details == "" {
		e.Details = cause.Error()
	}
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, details ...string) *AppError {
	message, ok := errorMessages[code]
	if !ok {
		message = errorMessages[ErrUnknown]
	}

	err := &AppError{
		Code:    code,
		Message: message,
	}

	if len(details) > 0 {
		err.Details = strings.Join(details, "; ")
	}

	// 捕获调用栈
	err.captureStack(2)

	return err
}

// Newf 创建格式化的应用错误
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, details ...string) *AppError {
	if err == nil {
		return nil
	}

	// 如果已经是AppError，保留原始错误码
	if appErr, ok := err.(*AppError); ok {
		if len(details) > 0 {
			appErr.Details = strings.Join(details, "; ") + "; " + appErr.Details
		}
		return appErr
	}

	appErr := New(code, details...)
	appErr.Cause = err
	if appErr.Details == "" {
		appErr.Details = err.Error()
	}

	return appErr
}

// Wrapf 包装格式化错误
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Is 判断错误是否为指定错误码
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// GetCode 获取错误码
func GetCode(err error) ErrorCode {
	if err == nil {
		return 0
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}

	return ErrUnknown
}

// captureStack 捕获调用栈
func (e *AppError) captureStack(skip int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()

		// 跳过runtime和本包的调用
		if strings.Contains(frame.Function, "runtime.") ||
			strings.Contains(frame.Function, "github.com/wfunc/lord-game/internal/errors") {
			if !more {
				break
			}
			continue
		}

		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})

		if !more || len(e.Stack) >= 10 {
			break
		}
	}
}
