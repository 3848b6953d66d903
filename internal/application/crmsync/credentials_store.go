package crmsync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CredentialsStore manages per-tenant CRM connections and lazily refreshes
// expired access tokens through a vendor supplied RefreshFunc.
type CredentialsStore struct {
	repo    crm.ConnectionRepository
	locker  crm.RefreshLocker
	skew    time.Duration
	metrics *telemetry.SyncMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// CredentialsStoreConfig contains configuration for CredentialsStore
type CredentialsStoreConfig struct {
	Repo crm.ConnectionRepository
	// Locker serialises refreshes per (tenant, system); nil disables locking
	Locker    crm.RefreshLocker
	ClockSkew time.Duration
	Metrics   *telemetry.SyncMetrics
	Logger    *zap.Logger
	// Now overrides the clock in tests
	Now func() time.Time
}

// NewCredentialsStore creates a new CredentialsStore
func NewCredentialsStore(cfg CredentialsStoreConfig) *CredentialsStore {
	skew := cfg.ClockSkew
	if skew <= 0 {
		skew = crm.DefaultClockSkew
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &CredentialsStore{
		repo:    cfg.Repo,
		locker:  cfg.Locker,
		skew:    skew,
		metrics: cfg.Metrics,
		logger:  logger,
		now:     now,
	}
}

// Get returns the stored connection or nil when none exists
func (s *CredentialsStore) Get(ctx context.Context, tenantID uuid.UUID, system crm.System) (*crm.Connection, error) {
	conn, err := s.repo.Get(ctx, tenantID, system)
	if err != nil {
		return nil, fmt.Errorf("load crm connection: %w", err)
	}
	return conn, nil
}

// GetActive returns an enabled, unexpired connection.
// Expired tokens are refreshed through refresh under the refresh lock and persisted.
func (s *CredentialsStore) GetActive(ctx context.Context, tenantID uuid.UUID, system crm.System, refresh crm.RefreshFunc) (*crm.Connection, error) {
	conn, err := s.Get(ctx, tenantID, system)
	if err != nil {
		return nil, err
	}
	if conn == nil || !conn.IsEnabled {
		return nil, fmt.Errorf("%w: tenant %s, system %s", crm.ErrNotConnected, tenantID, system)
	}
	if !conn.IsExpired(s.now(), s.skew) {
		return conn, nil
	}
	if refresh == nil {
		return nil, fmt.Errorf("%w: tenant %s, system %s", crm.ErrTokenExpired, tenantID, system)
	}
	return s.refreshLocked(ctx, tenantID, system, s.skew, refresh)
}

// refreshLocked refreshes the connection when it expires within window
func (s *CredentialsStore) refreshLocked(ctx context.Context, tenantID uuid.UUID, system crm.System, window time.Duration, refresh crm.RefreshFunc) (*crm.Connection, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, crm.RefreshLockKey(tenantID, system))
		if err != nil {
			return nil, fmt.Errorf("%w: acquire refresh lock: %w", crm.ErrTokenRefreshFailed, err)
		}
		defer unlock()
	}

	// Another caller may have refreshed while we waited for the lock
	current, err := s.Get(ctx, tenantID, system)
	if err != nil {
		return nil, err
	}
	if current == nil || !current.IsEnabled {
		return nil, fmt.Errorf("%w: tenant %s, system %s", crm.ErrNotConnected, tenantID, system)
	}
	if !current.IsExpired(s.now(), window) {
		return current, nil
	}

	refreshed, err := refresh(ctx, current.Clone())
	if err != nil {
		s.metrics.IncTokenRefresh(string(system), false)
		s.logger.Warn("CRM token refresh failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("crm_system", string(system)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", crm.ErrTokenRefreshFailed, err)
	}
	if refreshed == nil {
		s.metrics.IncTokenRefresh(string(system), false)
		return nil, fmt.Errorf("%w: refresher returned no connection", crm.ErrTokenRefreshFailed)
	}

	refreshed.TenantID = tenantID
	refreshed.System = system
	refreshed.IsEnabled = true
	refreshed.ModifiedBy = crm.SystemActor
	if err := s.Upsert(ctx, refreshed); err != nil {
		s.metrics.IncTokenRefresh(string(system), false)
		return nil, fmt.Errorf("%w: persist refreshed token: %w", crm.ErrTokenRefreshFailed, err)
	}
	s.metrics.IncTokenRefresh(string(system), true)

	s.logger.Info("CRM token refreshed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("crm_system", string(system)))
	return refreshed, nil
}

// Upsert inserts or updates the connection keyed on (tenant, system)
func (s *CredentialsStore) Upsert(ctx context.Context, conn *crm.Connection) error {
	if conn == nil {
		return fmt.Errorf("upsert crm connection: nil connection")
	}
	if !conn.System.IsValid() {
		return fmt.Errorf("%w: %q", crm.ErrUnknownSystem, conn.System)
	}
	conn.Normalize()
	now := s.now()
	if conn.CreatedTime.IsZero() {
		conn.CreatedTime = now
	}
	conn.LastModifiedTime = now
	if err := s.repo.Upsert(ctx, conn); err != nil {
		return fmt.Errorf("upsert crm connection: %w", err)
	}
	return nil
}

// Disable marks the connection disabled; missing connections are ignored
func (s *CredentialsStore) Disable(ctx context.Context, tenantID uuid.UUID, system crm.System) error {
	if err := s.repo.Disable(ctx, tenantID, system, crm.SystemActor); err != nil {
		return fmt.Errorf("disable crm connection: %w", err)
	}
	s.logger.Info("CRM connection disabled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("crm_system", string(system)))
	return nil
}

// ListConnectedSystems returns the systems with an enabled connection, sorted and deduplicated
func (s *CredentialsStore) ListConnectedSystems(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error) {
	systems, err := s.repo.ListEnabledSystems(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list connected crm systems: %w", err)
	}
	seen := make(map[crm.System]struct{}, len(systems))
	out := make([]crm.System, 0, len(systems))
	for _, sys := range systems {
		if _, ok := seen[sys]; ok {
			continue
		}
		seen[sys] = struct{}{}
		out = append(out, sys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// RefreshExpiring proactively refreshes enabled connections of system that
// expire before now+lookahead. It returns the number of refreshed connections;
// individual failures are logged and do not stop the sweep.
func (s *CredentialsStore) RefreshExpiring(ctx context.Context, system crm.System, lookahead time.Duration, refresh crm.RefreshFunc) (int, error) {
	if refresh == nil {
		return 0, nil
	}
	expiring, err := s.repo.ListExpiring(ctx, system, s.now().Add(max(lookahead, s.skew)))
	if err != nil {
		return 0, fmt.Errorf("list expiring crm connections: %w", err)
	}

	window := max(lookahead, s.skew)
	refreshed := 0
	for i := range expiring {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		conn := &expiring[i]
		if !conn.HasRefreshToken() {
			continue
		}
		if _, err := s.refreshLocked(ctx, conn.TenantID, system, window, refresh); err != nil {
			s.logger.Warn("Proactive CRM token refresh failed",
				zap.String("tenant_id", conn.TenantID.String()),
				zap.String("crm_system", string(system)),
				zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
