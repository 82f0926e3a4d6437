package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wfunc/lord-game/internal/config"
	"github.com/wfunc/lord-game/internal/console"
	"github.com/wfunc/lord-game/internal/database"
	"github.com/wfunc/lord-game/internal/logger"
	"github.com/wfunc/lord-game/internal/repository"
	"github.com/wfunc/lord-game/internal/service"
	"github.com/wfunc/lord-game/internal/utils"
)

// stdio 把标准输入输出组合成一个io.ReadWriter
type stdio struct {
	io.Reader
	io.Writer
}

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.Init(configPath); err != nil {
		return err
	}
	cfg := config.Get()

	// 本地游戏不往终端打日志，只写文件
	cfg.Log.Output = "file"
	if err := logger.Init(&cfg.Log); err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			return err
		}
	}

	repos := repository.NewManager(database.GetDB())

	jwtManager := utils.NewJWTManager(
		cfg.Security.JWTSecret,
		cfg.Security.AccessTokenExpiry,
		cfg.Security.RefreshTokenExpiry,
	)

	log := logger.GetLogger()
	authService := service.NewAuthService(repos.Player(), repos.Session(), jwtManager, log)
	gameService := service.NewGameService(repos.Player(), repos.News(), &cfg.Game, log)
	resetService := service.NewResetService(repos.GameState(), cfg.Game.DailyForestFights, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := resetService.EnsureInitialized(ctx); err != nil {
		return err
	}

	session := console.NewSession(
		&stdio{Reader: os.Stdin, Writer: os.Stdout},
		authService, gameService, resetService, log)

	err := session.Run(ctx)
	if err == io.EOF {
		fmt.Println()
		err = nil
	}

	// 给异步新闻写入一点时间
	time.Sleep(100 * time.Millisecond)
	return err
}
