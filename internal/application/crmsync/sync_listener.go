package crmsync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConnectedSystemsLister lists the CRM systems a tenant is connected to
type ConnectedSystemsLister interface {
	ListConnectedSystems(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error)
}

// SyncListener fans an entity change out to every connected CRM system
// concurrently and waits for all of them. One system's failure never affects another.
type SyncListener struct {
	systems ConnectedSystemsLister
	syncer  Syncer
	logger  *zap.Logger
}

// NewSyncListener creates a new SyncListener
func NewSyncListener(systems ConnectedSystemsLister, syncer Syncer, logger *zap.Logger) *SyncListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncListener{systems: systems, syncer: syncer, logger: logger}
}

// OnCompanyChanged syncs a company to every connected system
func (l *SyncListener) OnCompanyChanged(ctx context.Context, tenantID uuid.UUID, payload *crm.CompanyPayload) (map[crm.System]*crm.SyncResult, error) {
	return l.fanOut(ctx, tenantID, crm.ObjectTypeCompany, payload.InternalID(),
		func(ctx context.Context, system crm.System) *crm.SyncResult {
			return l.syncer.SyncCompany(ctx, tenantID, system, payload)
		})
}

// OnContactChanged syncs a contact to every connected system.
// Each system gets its own payload copy since the company CRM id differs per system.
func (l *SyncListener) OnContactChanged(ctx context.Context, tenantID uuid.UUID, payload *crm.ContactPayload) (map[crm.System]*crm.SyncResult, error) {
	return l.fanOut(ctx, tenantID, crm.ObjectTypeContact, payload.InternalID(),
		func(ctx context.Context, system crm.System) *crm.SyncResult {
			p := *payload
			return l.syncer.SyncContact(ctx, tenantID, system, &p)
		})
}

// OnOpportunityChanged syncs an opportunity to every connected system
func (l *SyncListener) OnOpportunityChanged(ctx context.Context, tenantID uuid.UUID, payload *crm.DealPayload) (map[crm.System]*crm.SyncResult, error) {
	return l.fanOut(ctx, tenantID, crm.ObjectTypeOpportunity, payload.InternalID(),
		func(ctx context.Context, system crm.System) *crm.SyncResult {
			return l.syncer.SyncOpportunity(ctx, tenantID, system, payload)
		})
}

// OnActivityCreated creates an activity in every connected system
func (l *SyncListener) OnActivityCreated(ctx context.Context, tenantID uuid.UUID, payload *crm.ActivityPayload) (map[crm.System]*crm.SyncResult, error) {
	return l.fanOut(ctx, tenantID, crm.ObjectTypeActivity, payload.InternalID(),
		func(ctx context.Context, system crm.System) *crm.SyncResult {
			return l.syncer.SyncActivity(ctx, tenantID, system, payload)
		})
}

func (l *SyncListener) fanOut(
	ctx context.Context,
	tenantID uuid.UUID,
	objectType crm.ObjectType,
	internalID uuid.UUID,
	sync func(ctx context.Context, system crm.System) *crm.SyncResult,
) (map[crm.System]*crm.SyncResult, error) {
	systems, err := l.systems.ListConnectedSystems(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list connected systems: %w", err)
	}
	if len(systems) == 0 {
		return map[crm.System]*crm.SyncResult{}, nil
	}

	results := make([]*crm.SyncResult, len(systems))
	// A plain Group: siblings must not cancel each other
	var g errgroup.Group
	for i, system := range systems {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error("CRM sync panicked",
						zap.String("tenant_id", tenantID.String()),
						zap.String("crm_system", string(system)),
						zap.Any("panic", r))
					results[i] = crm.NewSyncFailure(system, objectType, internalID, crm.CodeClientError,
						"unexpected error during crm sync", map[string]any{"exception": fmt.Sprint(r)})
				}
			}()
			results[i] = sync(ctx, system)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[crm.System]*crm.SyncResult, len(systems))
	for i, system := range systems {
		res := results[i]
		if res == nil {
			res = crm.NewSyncFailure(system, objectType, internalID, crm.CodeClientError, "crm sync returned no result", nil)
		}
		out[system] = res
	}
	return out, nil
}
