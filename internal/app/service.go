package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	errNoServices     = errors.New("no services to run")
	errServiceExited  = errors.New("service exited")
	errRunnerRequired = errors.New("runner is nil")
)

// Service 服务接口
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 服务运行器：任一服务退出或收到信号时停止全部服务
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errRunnerRequired
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动并监听服务
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errNoServices
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		service := svc
		group.Go(func() error {
			log.Infow("service_start", "service", service.Name())
			err := service.Start(groupCtx)
			log.Infow("service_exit", "service", service.Name(), "error", err)
			if err != nil {
				return fmt.Errorf("%s: %w", service.Name(), err)
			}
			if groupCtx.Err() == nil {
				return errServiceExited
			}
			return nil
		})
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-groupCtx.Done()
		r.stopAll(stopTimeout, log)
	}()

	err := group.Wait()
	<-stopped
	if err == nil || errors.Is(err, errServiceExited) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) stopAll(timeout time.Duration, log *zap.SugaredLogger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if err := svc.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
