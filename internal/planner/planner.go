//go:generate mockgen -source ./planner.go -destination=./mocks/planner.go -package=mock_planner
package planner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
)

type Generator interface {
	GenerateDeliveries(ctx context.Context, from time.Time, days int) (int, error)
}

type Config struct {
	Interval time.Duration
	Days     int
}

// Planner keeps the delivery table filled ahead of time. Every run books the
// window starting tomorrow, so today's route sheet is never touched.
type Planner struct {
	generator Generator
	config    Config
	logger    *zap.Logger
	timeNow   func() time.Time
	stop      chan struct{}
	mu        sync.Mutex
	stopped   bool
	wg        sync.WaitGroup
}

func New(generator Generator, config Config) *Planner {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.Days <= 0 {
		config.Days = 7
	}
	return &Planner{
		generator: generator,
		config:    config,
		logger:    zap.L().Named("planner"),
		timeNow:   time.Now,
		stop:      make(chan struct{}),
	}
}

// Run plans once immediately, then on every tick until ctx is done or Shutdown is called.
// It returns at once when Shutdown has already run.
func (p *Planner) Run(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()
	defer p.wg.Done()

	p.logger.Info("starting delivery planner",
		zap.Duration("interval", p.config.Interval),
		zap.Int("days", p.config.Days))

	p.RunOnce(ctx)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.RunOnce(ctx)
		case <-p.stop:
			p.logger.Info("delivery planner stopped")
			return
		case <-ctx.Done():
			p.logger.Info("delivery planner context cancelled, stopping")
			return
		}
	}
}

// RunOnce books one window. Failures are logged, the next tick retries.
func (p *Planner) RunOnce(ctx context.Context) int {
	from := p.timeNow().AddDate(0, 0, 1)
	created, err := p.generator.GenerateDeliveries(ctx, from, p.config.Days)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("planner").Inc()
		p.logger.Error("failed to generate deliveries", zap.Error(err), zap.Int("created", created))
		return created
	}
	p.logger.Debug("planner run finished", zap.Int("created", created))
	return created
}

func (p *Planner) Shutdown() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.stop)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
