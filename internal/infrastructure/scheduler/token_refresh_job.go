package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Token refresh defaults
const (
	DefaultRefreshSchedule  = "@every 5m"
	DefaultRefreshLookahead = 10 * time.Minute
	DefaultRefreshTimeout   = 2 * time.Minute
)

// ExpiringTokenRefresher refreshes every connection of a system expiring within lookahead
type ExpiringTokenRefresher interface {
	RefreshExpiring(ctx context.Context, system crm.System, lookahead time.Duration, refresh crm.RefreshFunc) (int, error)
}

// RefreshTarget pairs a system with its vendor refresh function
type RefreshTarget struct {
	System  crm.System
	Refresh crm.RefreshFunc
}

// TokenRefreshJobConfig holds configuration for the token refresh job
type TokenRefreshJobConfig struct {
	// Schedule is a standard cron spec or descriptor such as "@every 5m"
	Schedule  string
	Lookahead time.Duration
	// Timeout bounds one run across all targets
	Timeout time.Duration
	Targets []RefreshTarget
}

// TokenRefreshJob proactively refreshes OAuth tokens before they expire,
// so syncs rarely pay for a refresh inline
type TokenRefreshJob struct {
	config    TokenRefreshJobConfig
	refresher ExpiringTokenRefresher
	logger    *zap.Logger

	mu        sync.Mutex
	cron      *cron.Cron
	isRunning bool
	// baseCtx is cancelled on Stop to abort an in-flight run
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewTokenRefreshJob creates a token refresh job. The schedule is validated here.
func NewTokenRefreshJob(config TokenRefreshJobConfig, refresher ExpiringTokenRefresher, logger *zap.Logger) (*TokenRefreshJob, error) {
	if config.Schedule == "" {
		config.Schedule = DefaultRefreshSchedule
	}
	if config.Lookahead <= 0 {
		config.Lookahead = DefaultRefreshLookahead
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshTimeout
	}
	if refresher == nil {
		return nil, fmt.Errorf("%w: token refresher is required", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return nil, fmt.Errorf("%w: schedule %q: %w", ErrInvalidConfig, config.Schedule, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenRefreshJob{config: config, refresher: refresher, logger: logger}, nil
}

// Start registers the job with a cron scheduler and starts it
func (j *TokenRefreshJob) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.isRunning {
		return nil
	}

	cl := cronLogger{logger: j.logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	j.baseCtx, j.cancel = context.WithCancel(context.WithoutCancel(ctx))
	if _, err := c.AddFunc(j.config.Schedule, func() { j.RunOnce(j.baseCtx) }); err != nil {
		j.cancel()
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.Start()
	j.cron = c
	j.isRunning = true

	j.logger.Info("Token refresh job started",
		zap.String("schedule", j.config.Schedule),
		zap.Duration("lookahead", j.config.Lookahead),
		zap.Int("targets", len(j.config.Targets)))
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish or ctx to expire
func (j *TokenRefreshJob) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = false
	c, cancel := j.cron, j.cancel
	j.mu.Unlock()

	stopped := c.Stop()
	select {
	case <-stopped.Done():
		cancel()
		j.logger.Info("Token refresh job stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// RunOnce refreshes expiring tokens for every target and returns the count per system.
// One system's failure does not stop the others.
func (j *TokenRefreshJob) RunOnce(ctx context.Context) map[crm.System]int {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	start := time.Now()
	counts := make(map[crm.System]int, len(j.config.Targets))
	for _, target := range j.config.Targets {
		if target.Refresh == nil {
			continue
		}
		n, err := j.refresher.RefreshExpiring(ctx, target.System, j.config.Lookahead, target.Refresh)
		counts[target.System] = n
		if err != nil {
			j.logger.Error("Token refresh run failed",
				zap.String("crm_system", string(target.System)),
				zap.Int("refreshed", n),
				zap.Error(err))
			continue
		}
		if n > 0 {
			j.logger.Info("Refreshed expiring CRM tokens",
				zap.String("crm_system", string(target.System)),
				zap.Int("refreshed", n))
		}
	}
	j.logger.Debug("Token refresh run completed", zap.Duration("duration", time.Since(start)))
	return counts
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
