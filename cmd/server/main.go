package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/blindbox-next/internal/app"
	"github.com/blindbox-next/internal/cache"
	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	// 解析命令行参数
	var mode string
	var configPath string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.StringVar(&configPath, "config", "", "配置文件路径，为空时按默认目录查找 config.yml")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	var cfg *config.Config
	if configPath == "" {
		cfg = config.Load()
	} else {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug"); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 目录为空时写入默认系列
	if cfg.Blindbox.SeedOnStart {
		if _, err := models.SeedCatalog(models.DB); err != nil {
			stdLog.Printf("警告: 初始化默认商品失败: %v", err)
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	defer func() {
		_ = cache.Close()
	}()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                 🎁 Blindbox-Next API 启动中                  ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "██████╗ ██╗     ██╗███╗   ██╗██████╗ ██████╗  ██████╗ ██╗  ██╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██║     ██║████╗  ██║██╔══██╗██╔══██╗██╔═══██╗╚██╗██╔╝" + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝██║     ██║██╔██╗ ██║██║  ██║██████╔╝██║   ██║ ╚███╔╝ " + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██║     ██║██║╚██╗██║██║  ██║██╔══██╗██║   ██║ ██╔██╗ " + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝███████╗██║██║ ╚████║██████╔╝██████╔╝╚██████╔╝██╔╝ ██╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═════╝ ╚══════╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Draw engine · Backpack ledger · Stock admin" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
