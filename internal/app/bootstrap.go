package app

import (
	"errors"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/provider"
	"github.com/blindbox-next/internal/router"
	"github.com/blindbox-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务（队列未启用时 all 模式仅运行 HTTP，审计记录同步写入）
	if mode == ModeAll && !cfg.Queue.Enabled {
		logger.Infow("app_worker_skipped", "reason", "queue_disabled")
	} else if mode == ModeAll || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errNoServices
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	opts.Mode = mode

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
