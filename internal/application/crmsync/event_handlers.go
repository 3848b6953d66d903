package crmsync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/leadlane/backend/internal/domain/udm"
	"go.uber.org/zap"
)

// CompanySyncHandler syncs companies to the CRM systems on CompanyChanged
type CompanySyncHandler struct {
	companies udm.CompanyRepository
	listener  *SyncListener
	logger    *zap.Logger
}

// NewCompanySyncHandler creates a new CompanySyncHandler
func NewCompanySyncHandler(companies udm.CompanyRepository, listener *SyncListener, logger *zap.Logger) *CompanySyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanySyncHandler{companies: companies, listener: listener, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *CompanySyncHandler) EventTypes() []string {
	return []string{udm.EventTypeCompanyChanged}
}

// Handle implements shared.EventHandler
func (h *CompanySyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*udm.CompanyChangedEvent)
	if !ok {
		return fmt.Errorf("company sync handler: unexpected event %T", event)
	}
	company, err := h.companies.FindByID(ctx, e.TenantID(), e.CompanyID)
	if err != nil {
		return fmt.Errorf("load company %s: %w", e.CompanyID, err)
	}
	results, err := h.listener.OnCompanyChanged(ctx, e.TenantID(), BuildCompanyPayload(company, nil))
	logResults(h.logger, e.TenantID(), crm.ObjectTypeCompany, results)
	return err
}

// ContactSyncHandler syncs contacts on ContactChanged
type ContactSyncHandler struct {
	contacts udm.ContactRepository
	listener *SyncListener
	logger   *zap.Logger
}

// NewContactSyncHandler creates a new ContactSyncHandler
func NewContactSyncHandler(contacts udm.ContactRepository, listener *SyncListener, logger *zap.Logger) *ContactSyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactSyncHandler{contacts: contacts, listener: listener, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *ContactSyncHandler) EventTypes() []string {
	return []string{udm.EventTypeContactChanged}
}

// Handle implements shared.EventHandler
func (h *ContactSyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*udm.ContactChangedEvent)
	if !ok {
		return fmt.Errorf("contact sync handler: unexpected event %T", event)
	}
	contact, err := h.contacts.FindByID(ctx, e.TenantID(), e.ContactID)
	if err != nil {
		return fmt.Errorf("load contact %s: %w", e.ContactID, err)
	}
	results, err := h.listener.OnContactChanged(ctx, e.TenantID(), BuildContactPayload(contact, "", nil))
	logResults(h.logger, e.TenantID(), crm.ObjectTypeContact, results)
	return err
}

// OpportunitySyncHandler syncs opportunities on OpportunityChanged
type OpportunitySyncHandler struct {
	opportunities udm.OpportunityRepository
	listener      *SyncListener
	logger        *zap.Logger
}

// NewOpportunitySyncHandler creates a new OpportunitySyncHandler
func NewOpportunitySyncHandler(opportunities udm.OpportunityRepository, listener *SyncListener, logger *zap.Logger) *OpportunitySyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpportunitySyncHandler{opportunities: opportunities, listener: listener, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *OpportunitySyncHandler) EventTypes() []string {
	return []string{udm.EventTypeOpportunityChanged}
}

// Handle implements shared.EventHandler
func (h *OpportunitySyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*udm.OpportunityChangedEvent)
	if !ok {
		return fmt.Errorf("opportunity sync handler: unexpected event %T", event)
	}
	opportunity, err := h.opportunities.FindByID(ctx, e.TenantID(), e.OpportunityID)
	if err != nil {
		return fmt.Errorf("load opportunity %s: %w", e.OpportunityID, err)
	}
	results, err := h.listener.OnOpportunityChanged(ctx, e.TenantID(), BuildDealPayload(opportunity, nil))
	logResults(h.logger, e.TenantID(), crm.ObjectTypeOpportunity, results)
	return err
}

// ActivitySyncHandler creates activities on ActivityCreated.
// The event carries the activity itself since activities are not stored locally.
type ActivitySyncHandler struct {
	listener *SyncListener
	logger   *zap.Logger
}

// NewActivitySyncHandler creates a new ActivitySyncHandler
func NewActivitySyncHandler(listener *SyncListener, logger *zap.Logger) *ActivitySyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivitySyncHandler{listener: listener, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *ActivitySyncHandler) EventTypes() []string {
	return []string{udm.EventTypeActivityCreated}
}

// Handle implements shared.EventHandler
func (h *ActivitySyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*udm.ActivityCreatedEvent)
	if !ok || e.Activity == nil {
		return fmt.Errorf("activity sync handler: unexpected event %T", event)
	}
	results, err := h.listener.OnActivityCreated(ctx, e.TenantID(), BuildActivityPayload(e.Activity, nil))
	logResults(h.logger, e.TenantID(), crm.ObjectTypeActivity, results)
	return err
}

func logResults(logger *zap.Logger, tenantID uuid.UUID, objectType crm.ObjectType, results map[crm.System]*crm.SyncResult) {
	for system, res := range results {
		if res.Success {
			logger.Info("CRM sync succeeded",
				zap.String("tenant_id", tenantID.String()),
				zap.String("crm_system", string(system)),
				zap.String("object_type", string(objectType)),
				zap.String("crm_id", res.CRMID))
			continue
		}
		logger.Warn("CRM sync failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("crm_system", string(system)),
			zap.String("object_type", string(objectType)),
			zap.String("code", res.FirstErrorCode()))
	}
}

var (
	_ shared.EventHandler = (*CompanySyncHandler)(nil)
	_ shared.EventHandler = (*ContactSyncHandler)(nil)
	_ shared.EventHandler = (*OpportunitySyncHandler)(nil)
	_ shared.EventHandler = (*ActivitySyncHandler)(nil)
)
