package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同时运行 API 与审计 worker，api/worker 分别单独运行
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// ParseMode 归一化并校验启动模式
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want all, api or worker)", raw)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return opts
}
