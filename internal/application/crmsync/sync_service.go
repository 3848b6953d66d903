package crmsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CredentialsProvider is the part of CredentialsStore used by sync
type CredentialsProvider interface {
	Get(ctx context.Context, tenantID uuid.UUID, system crm.System) (*crm.Connection, error)
	GetActive(ctx context.Context, tenantID uuid.UUID, system crm.System, refresh crm.RefreshFunc) (*crm.Connection, error)
	ListConnectedSystems(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error)
}

// Syncer pushes one internal record into one CRM system
type Syncer interface {
	SyncCompany(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.CompanyPayload) *crm.SyncResult
	SyncContact(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.ContactPayload) *crm.SyncResult
	SyncOpportunity(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.DealPayload) *crm.SyncResult
	SyncActivity(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.ActivityPayload) *crm.SyncResult
}

// SyncService runs one outbound sync: validate the payload, ensure credentials,
// resolve the existing link, call the vendor client and record the new link.
// Failures are always reported as a failed SyncResult.
type SyncService struct {
	credentials CredentialsProvider
	factory     crm.ClientFactory
	refreshers  map[crm.System]crm.RefreshFunc
	links       map[crm.LinkKind]crm.LinkRepository
	metrics     *telemetry.SyncMetrics
	logger      *zap.Logger
}

// SyncServiceConfig contains configuration for SyncService
type SyncServiceConfig struct {
	Credentials CredentialsProvider
	Factory     crm.ClientFactory
	// Refreshers supplies the token refresh function per system
	Refreshers map[crm.System]crm.RefreshFunc
	Links      map[crm.LinkKind]crm.LinkRepository
	Metrics    *telemetry.SyncMetrics
	Logger     *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(cfg SyncServiceConfig) *SyncService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		credentials: cfg.Credentials,
		factory:     cfg.Factory,
		refreshers:  cfg.Refreshers,
		links:       cfg.Links,
		metrics:     cfg.Metrics,
		logger:      logger,
	}
}

var _ Syncer = (*SyncService)(nil)

// syncOp describes one object type's vendor call
type syncOp struct {
	objectType crm.ObjectType
	internalID uuid.UUID
	// linkKind is empty for objects without a link table
	linkKind crm.LinkKind
	call     func(ctx context.Context, client crm.Client, existingCRMID string) (*crm.SyncResult, error)
}

// SyncCompany upserts a company as a CRM company/account
func (s *SyncService) SyncCompany(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.CompanyPayload) *crm.SyncResult {
	return s.run(ctx, tenantID, system, syncOp{
		objectType: crm.ObjectTypeCompany,
		internalID: payload.InternalID(),
		linkKind:   crm.LinkKindAccount,
		call: func(ctx context.Context, client crm.Client, existingCRMID string) (*crm.SyncResult, error) {
			return client.UpsertCompany(ctx, payload, existingCRMID)
		},
	})
}

// SyncContact upserts a contact, associating it with its company when linked
func (s *SyncService) SyncContact(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.ContactPayload) *crm.SyncResult {
	return s.run(ctx, tenantID, system, syncOp{
		objectType: crm.ObjectTypeContact,
		internalID: payload.InternalID(),
		linkKind:   crm.LinkKindContact,
		call: func(ctx context.Context, client crm.Client, existingCRMID string) (*crm.SyncResult, error) {
			s.resolveContactCompany(ctx, tenantID, system, payload)
			return client.UpsertContact(ctx, payload, existingCRMID)
		},
	})
}

// SyncOpportunity upserts an opportunity as a CRM deal
func (s *SyncService) SyncOpportunity(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.DealPayload) *crm.SyncResult {
	return s.run(ctx, tenantID, system, syncOp{
		objectType: crm.ObjectTypeOpportunity,
		internalID: payload.InternalID(),
		linkKind:   crm.LinkKindOpportunity,
		call: func(ctx context.Context, client crm.Client, existingCRMID string) (*crm.SyncResult, error) {
			return client.UpsertDeal(ctx, payload, existingCRMID)
		},
	})
}

// SyncActivity creates an activity. Activities are not linked and are never updated.
func (s *SyncService) SyncActivity(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.ActivityPayload) *crm.SyncResult {
	return s.run(ctx, tenantID, system, syncOp{
		objectType: crm.ObjectTypeActivity,
		internalID: payload.InternalID(),
		call: func(ctx context.Context, client crm.Client, _ string) (*crm.SyncResult, error) {
			return client.CreateActivity(ctx, payload)
		},
	})
}

func (s *SyncService) run(ctx context.Context, tenantID uuid.UUID, system crm.System, op syncOp) (result *crm.SyncResult) {
	start := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "crm_sync", "sync_"+string(op.objectType),
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrCRMSystem, string(system),
		telemetry.AttrObjectType, string(op.objectType),
	)
	defer func() {
		code := result.FirstErrorCode()
		if !result.Success {
			telemetry.MarkFailed(span, code)
			telemetry.SetAttributes(span, telemetry.AttrErrorCode, code)
		} else if result.CRMID != "" {
			telemetry.SetAttributes(span, telemetry.AttrCRMID, result.CRMID)
		}
		span.End()
		s.metrics.ObserveSync(string(system), string(op.objectType), code, time.Since(start))
	}()

	log := s.logger.With(
		zap.String("tenant_id", tenantID.String()),
		zap.String("crm_system", string(system)),
		zap.String("object_type", string(op.objectType)),
	)

	if op.internalID == uuid.Nil {
		return crm.NewSyncFailure(system, op.objectType, uuid.Nil, crm.CodeMissingInternalID,
			"payload is missing the internal id", nil)
	}
	log = log.With(zap.String("leadlane_id", op.internalID.String()))
	telemetry.SetAttributes(span, telemetry.AttrInternalID, op.internalID.String())

	client, failure := s.ensureClient(ctx, tenantID, system, op)
	if failure != nil {
		log.Warn("CRM sync skipped", zap.String("code", failure.FirstErrorCode()))
		return failure
	}

	existingCRMID := ""
	var linkRepo crm.LinkRepository
	if op.linkKind != "" {
		linkRepo = s.links[op.linkKind]
		if linkRepo != nil {
			link, err := linkRepo.GetByInternalID(ctx, tenantID, system, op.internalID)
			if err != nil {
				log.Error("Failed to resolve CRM link", zap.Error(err))
				return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeClientError,
					"failed to resolve existing crm link", map[string]any{"exception": err.Error()})
			}
			if link != nil {
				existingCRMID = link.CRMID
			}
		}
	}

	res, err := safeCall(ctx, client, existingCRMID, op.call)
	if err != nil {
		log.Error("CRM client error", zap.Error(err))
		telemetry.RecordError(span, err)
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeClientError,
			"unexpected error while calling the crm client", map[string]any{"exception": err.Error()})
	}
	if res == nil {
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeClientError,
			"crm client returned no result", nil)
	}
	res.System = system
	res.ObjectType = op.objectType
	if res.InternalID == "" {
		res.InternalID = op.internalID.String()
	}

	if res.Success && res.CRMID != "" && linkRepo != nil {
		if _, err := linkRepo.UpsertLink(ctx, tenantID, system, op.internalID, res.CRMID); err != nil {
			log.Error("Failed to store CRM link", zap.String("crm_id", res.CRMID), zap.Error(err))
		}
	}

	log.Info("CRM sync finished",
		zap.Bool("success", res.Success),
		zap.String("crm_id", res.CRMID),
		zap.String("code", res.FirstErrorCode()))
	return res
}

// ensureClient loads active credentials and builds the vendor client.
// A non-nil result means the sync must stop with that failure.
func (s *SyncService) ensureClient(ctx context.Context, tenantID uuid.UUID, system crm.System, op syncOp) (crm.Client, *crm.SyncResult) {
	conn, err := s.credentials.GetActive(ctx, tenantID, system, s.refreshers[system])
	if err != nil {
		return nil, s.credentialFailure(ctx, tenantID, system, op, err)
	}
	client, err := s.factory.NewClient(system, conn)
	if err != nil {
		return nil, crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeClientError,
			"failed to build crm client", map[string]any{"exception": err.Error()})
	}
	return client, nil
}

func (s *SyncService) credentialFailure(ctx context.Context, tenantID uuid.UUID, system crm.System, op syncOp, err error) *crm.SyncResult {
	details := map[string]any{"error": err.Error()}
	switch {
	case errors.Is(err, crm.ErrNotConnected):
		if conn, getErr := s.credentials.Get(ctx, tenantID, system); getErr == nil && conn != nil && !conn.IsEnabled {
			return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeConnectionDisabled,
				fmt.Sprintf("the %s connection is disabled for this tenant", system), nil)
		}
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeMissingCredentials,
			fmt.Sprintf("no active credentials for %s", system), details)
	case errors.Is(err, crm.ErrTokenExpired):
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeTokenExpired,
			"access token expired and cannot be refreshed", details)
	case errors.Is(err, crm.ErrTokenRefreshFailed):
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeTokenRefreshFailed,
			"access token refresh failed", details)
	default:
		return crm.NewSyncFailure(system, op.objectType, op.internalID, crm.CodeMissingCredentials,
			"failed to load credentials", details)
	}
}

// resolveContactCompany fills the company CRM id from the account links
func (s *SyncService) resolveContactCompany(ctx context.Context, tenantID uuid.UUID, system crm.System, payload *crm.ContactPayload) {
	if payload.CompanyCRMID != "" || payload.Contact == nil || payload.Contact.CompanyID == nil {
		return
	}
	repo := s.links[crm.LinkKindAccount]
	if repo == nil {
		return
	}
	link, err := repo.GetByInternalID(ctx, tenantID, system, *payload.Contact.CompanyID)
	if err != nil {
		s.logger.Warn("Failed to resolve company link for contact",
			zap.String("contact_id", payload.Contact.ID.String()),
			zap.Error(err))
		return
	}
	if link != nil {
		payload.CompanyCRMID = link.CRMID
	}
}

// safeCall invokes a vendor call, converting a panic into an error
func safeCall(
	ctx context.Context,
	client crm.Client,
	existingCRMID string,
	call func(context.Context, crm.Client, string) (*crm.SyncResult, error),
) (res *crm.SyncResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("crm client panic: %v", r)
		}
	}()
	return call(ctx, client, existingCRMID)
}
