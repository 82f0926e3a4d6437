package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/wfunc/lord-game/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	once   sync.Once
	mu     sync.RWMutex

	// 模块日志器
	moduleLoggers map[string]*zap.Logger
)

// Init 初始化日志系统
func Init(cfg *config.LogConfig) error {
	var err error
	once.Do(func() {
		moduleLoggers = make(map[string]*zap.Logger)

		// 解析日志级别
		level := parseLevel(cfg.Level)

		// 创建编码器配置
		encoderConfig := zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		// 根据格式选择编码器
		var encoder zapcore.Encoder
		if cfg.Format == "json" {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		// 创建输出核心
		var cores []zapcore.Core

		// 控制台输出
		if cfg.Output == "stdout" || cfg.Output == "both" {
			consoleCore := zapcore.NewCore(
				encoder,
				zapcore.AddSync(os.Stdout),
				level,
			)
			cores = append(cores, consoleCore)
		}

		// 文件输出
		if cfg.Output == "file" || cfg.Output == "both" {
			// 确保日志目录存在
			logDir := cfg.File.Path
			if err = os.MkdirAll(logDir, 0755); err != nil {
				return
			}

			// 创建文件写入器（支持日志轮转）
			fileWriter := &lumberjack.Logger{
				Filename:   filepath.Join(logDir, cfg.File.Filename),
				MaxSize:    cfg.File.MaxSize,    // MB
				MaxAge:     cfg.File.MaxAge,     // days
				MaxBackups: cfg.File.MaxBackups, // 保留文件数
				Compress:   cfg.File.Compress,
			}

			fileCore := zapcore.NewCore(
				encoder,
				zapcore.AddSync(fileWriter),
				level,
			)
			cores = append(cores, fileCore)
		}

		// 创建日志器
		logger = zap.New(
			zapcore.NewTee(cores...),
			zap.AddCaller(),
			zap.AddCallerSkip(1),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)

		sugar = logger.Sugar()

		// 初始化模块日志器
		for module, levelStr := range cfg.Modules {
			moduleCore := zapcore.NewCore(
				encoder,
				zapcore.AddSync(os.Stdout),
				parseLevel(levelStr),
			)
			moduleLoggers[module] = zap.New(
				moduleCore,
				zap.AddCaller(),
				zap.AddCallerSkip(1),
			)
		}
	})

	return err
}

// parseLevel 解析日志级别
func parseLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger 获取日志器
func GetLogger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		// 如果未初始化，使用默认配置
		defaultLogger, _ := zap.NewProduction()
		return defaultLogger
	}
	return logger
}

// GetSugar 获取Sugar日志器
func GetSugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if sugar == nil {
		return GetLogger().Sugar()
	}
	return sugar
}

// GetModuleLogger 获取模块日志器
func GetModuleLogger(module string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if moduleLogger, ok := moduleLoggers[module]; ok {
		return moduleLogger
	}
	return GetLogger()
}

// Sync 同步日志缓冲区
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()

	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// Debug 输出调试日志
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Info 输出信息日志
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Warn 输出警告日志
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error 输出错误日志
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal 输出致命错误日志并退出程序
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// Infof 格式化输出信息日志
func Infof(template string, args ...interface{}) {
	GetSugar().Infof(template, args...)
}

// Warnf 格式化输出警告日志
func Warnf(template string, args ...interface{}) {
	GetSugar().Warnf(template, args...)
}

// Errorf 格式化输出错误日志
func Errorf(template string, args ...interface{}) {
	GetSugar().Errorf(template, args...)
}
