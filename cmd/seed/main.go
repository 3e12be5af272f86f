package main

import (
	"flag"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/repository"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径")
	flag.Parse()

	// 连接数据库
	var cfg *config.Config
	if configPath == "" {
		cfg = config.Load()
	} else {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			logger.StdLogger().Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 写入默认系列
	created, err := models.SeedCatalog(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	if created == 0 {
		stdLog.Printf("Catalog already exists, skipped")
	} else {
		stdLog.Printf("Created %d products", created)
	}

	products, err := repository.NewProductRepository(models.DB).List()
	if err != nil {
		stdLog.Fatalf("Failed to list products: %v", err)
	}
	for _, p := range products {
		stdLog.Printf("  #%d %s  common=%d rare=%d secret=%d items=%d",
			p.ID, p.Name, p.StockCommon, p.StockRare, p.StockSecret, len(p.Items))
	}
	stdLog.Println("Seed completed successfully!")
}
