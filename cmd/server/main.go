package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wfunc/lord-game/internal/api"
	"github.com/wfunc/lord-game/internal/config"
	"github.com/wfunc/lord-game/internal/database"
	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/logger"
	"github.com/wfunc/lord-game/internal/repository"
	"github.com/wfunc/lord-game/internal/service"
	"github.com/wfunc/lord-game/internal/utils"
	"go.uber.org/zap"
)

// 版本信息
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Server 服务器实例
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	httpServer   *http.Server
	resetService service.ResetService

	// 关闭控制
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	var (
		configPath  = flag.String("config", "", "配置文件路径")
		showVersion = flag.Bool("version", false, "显示版本信息")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("lord-game server %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	// 加载配置
	if err := config.Init(*configPath); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Get()

	// 初始化日志系统
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	server := NewServer(cfg)

	if err := server.Start(); err != nil {
		logger.Fatal("服务器启动失败", zap.Error(err))
	}

	server.WaitForShutdown()

	if err := server.Shutdown(); err != nil {
		logger.Error("服务器关闭失败", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("服务器已安全关闭")
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		cfg:    cfg,
		logger: logger.GetLogger(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("正在启动王国服务器...",
		zap.String("version", Version),
		zap.String("mode", s.cfg.Server.Mode),
	)

	if err := s.initDatabase(); err != nil {
		return err
	}

	// 组装仓储与服务
	repos := repository.NewManager(database.GetDB())

	jwtManager := utils.NewJWTManager(
		s.cfg.Security.JWTSecret,
		s.cfg.Security.AccessTokenExpiry,
		s.cfg.Security.RefreshTokenExpiry,
	)

	authService := service.NewAuthService(repos.Player(), repos.Session(), jwtManager, s.logger)
	gameService := service.NewGameService(repos.Player(), repos.News(), &s.cfg.Game, s.logger)
	s.resetService = service.NewResetService(repos.GameState(), s.cfg.Game.DailyForestFights, s.logger)

	// 启动时登记日期并检查跨天
	if err := s.resetService.EnsureInitialized(s.ctx); err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "初始化每日重置状态失败")
	}
	if _, err := s.resetService.MaybeReset(s.ctx); err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "启动时每日重置失败")
	}

	// HTTP与WebSocket门户
	router := api.NewRouter(authService, gameService, s.resetService, &s.cfg.WebSocket, s.logger)
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	s.wg.Add(1)
	go s.serveHTTP()

	s.wg.Add(1)
	go s.runDailyResetLoop()

	// 清理过期会话
	s.wg.Add(1)
	go s.runSessionCleanup(repos.Session())

	// 监听配置变化
	config.Watch(func(newCfg *config.Config) {
		s.logger.Info("配置已更新，正在重新加载...")
		s.cfg = newCfg
	})

	s.logger.Info("服务器启动成功",
		zap.String("http", s.httpServer.Addr),
		zap.String("door", s.cfg.WebSocket.Path),
	)

	return nil
}

// initDatabase 初始化数据库
func (s *Server) initDatabase() error {
	// 清理上次异常退出留下的锁文件
	database.CleanupStaleLocks()

	if err := database.Init(&s.cfg.Database); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseConnect, "初始化数据库连接失败")
	}

	if s.cfg.Database.AutoMigrate {
		s.logger.Info("执行数据库自动迁移...")
		if err := database.AutoMigrate(); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseConnect, "数据库迁移失败")
		}
	}

	if !database.IsConnected() {
		return errors.New(errors.ErrDatabaseConnect, "数据库连接检查失败")
	}

	return nil
}

// serveHTTP 运行HTTP服务
func (s *Server) serveHTTP() {
	defer s.wg.Done()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("HTTP服务异常退出", zap.Error(err))
		s.cancel()
	}
}

// runDailyResetLoop 定期检查是否跨天
func (s *Server) runDailyResetLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.resetService.MaybeReset(s.ctx); err != nil {
				s.logger.Warn("每日重置检查失败", zap.Error(err))
			}
		}
	}
}

// runSessionCleanup 定期清理过期会话
func (s *Server) runSessionCleanup(sessionRepo repository.SessionRepository) {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			n, err := sessionRepo.DeleteExpired(s.ctx)
			if err != nil {
				s.logger.Warn("清理过期会话失败", zap.Error(err))
			} else if n > 0 {
				s.logger.Info("清理过期会话", zap.Int64("count", n))
			}
		}
	}
}

// WaitForShutdown 等待关闭信号
func (s *Server) WaitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		s.logger.Info("收到关闭信号", zap.String("signal", sig.String()))
	case <-s.ctx.Done():
	}
}

// Shutdown 优雅关闭
func (s *Server) Shutdown() error {
	s.logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP服务关闭失败", zap.Error(err))
		}
	}

	s.cancel()
	s.wg.Wait()

	if err := database.Close(); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseConnect, "关闭数据库失败")
	}

	return nil
}
