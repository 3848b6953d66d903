package crmsync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompanySyncHandler_Handle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	company := udm.NewCompany(tenantID, "Acme")

	companies := new(MockCompanyRepository)
	companies.On("FindByID", mock.Anything, tenantID, company.ID).Return(company, nil)

	var synced []crm.System
	listener := NewSyncListener(
		staticSystems{systems: []crm.System{crm.SystemHubSpot}},
		funcSyncer{fn: func(system crm.System, objectType crm.ObjectType) *crm.SyncResult {
			synced = append(synced, system)
			assert.Equal(t, crm.ObjectTypeCompany, objectType)
			return &crm.SyncResult{Success: true, System: system, ObjectType: objectType, CRMID: "1"}
		}},
		nil,
	)

	handler := NewCompanySyncHandler(companies, listener, zap.NewNop())
	assert.Equal(t, []string{udm.EventTypeCompanyChanged}, handler.EventTypes())

	require.NoError(t, handler.Handle(ctx, udm.NewCompanyChangedEvent(tenantID, company.ID)))
	assert.Equal(t, []crm.System{crm.SystemHubSpot}, synced)

	// Wrong event type
	assert.Error(t, handler.Handle(ctx, udm.NewContactChangedEvent(tenantID, uuid.New())))
}

func TestCompanySyncHandler_LoadFailure(t *testing.T) {
	tenantID := uuid.New()
	companies := new(MockCompanyRepository)
	companies.On("FindByID", mock.Anything, tenantID, mock.Anything).Return(nil, udm.ErrNotFound)

	handler := NewCompanySyncHandler(companies, NewSyncListener(staticSystems{}, funcSyncer{}, nil), nil)
	err := handler.Handle(context.Background(), udm.NewCompanyChangedEvent(tenantID, uuid.New()))
	assert.ErrorIs(t, err, udm.ErrNotFound)
}

func TestActivitySyncHandler_Handle(t *testing.T) {
	tenantID := uuid.New()
	activity := udm.NewActivity(tenantID, udm.ActivityTypeEmail)

	calls := 0
	listener := NewSyncListener(
		staticSystems{systems: []crm.System{crm.SystemHubSpot}},
		funcSyncer{fn: func(system crm.System, objectType crm.ObjectType) *crm.SyncResult {
			calls++
			return crm.NewSyncFailure(system, objectType, activity.ID, crm.CodeMissingCredentials, "no creds", nil)
		}},
		nil,
	)
	handler := NewActivitySyncHandler(listener, zap.NewNop())

	// Failed syncs are logged, not returned
	require.NoError(t, handler.Handle(context.Background(), udm.NewActivityCreatedEvent(activity)))
	assert.Equal(t, 1, calls)
}

func TestSyncHandlers_NilLoggerDefaultsToNop(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	company := udm.NewCompany(tenantID, "Acme")
	contact := udm.NewContact(tenantID, "Lovelace")

	companies := new(MockCompanyRepository)
	companies.On("FindByID", mock.Anything, tenantID, company.ID).Return(company, nil)
	contacts := new(MockContactRepository)
	contacts.On("FindByID", mock.Anything, tenantID, contact.ID).Return(contact, nil)

	// Failing syncs make the handlers log
	listener := NewSyncListener(
		staticSystems{systems: []crm.System{crm.SystemHubSpot}},
		funcSyncer{fn: func(system crm.System, objectType crm.ObjectType) *crm.SyncResult {
			return crm.NewSyncFailure(system, objectType, uuid.New(), crm.CodeMissingCredentials, "no creds", nil)
		}},
		nil,
	)

	companyHandler := NewCompanySyncHandler(companies, listener, nil)
	contactHandler := NewContactSyncHandler(contacts, listener, nil)
	activityHandler := NewActivitySyncHandler(listener, nil)
	assert.NotNil(t, companyHandler.logger)
	assert.NotNil(t, contactHandler.logger)
	assert.NotNil(t, activityHandler.logger)
	assert.NotNil(t, NewOpportunitySyncHandler(nil, listener, nil).logger)

	tests := []struct {
		name string
		run  func() error
	}{
		{"company", func() error { return companyHandler.Handle(ctx, udm.NewCompanyChangedEvent(tenantID, company.ID)) }},
		{"contact", func() error { return contactHandler.Handle(ctx, udm.NewContactChangedEvent(tenantID, contact.ID)) }},
		{"activity", func() error {
			return activityHandler.Handle(ctx, udm.NewActivityCreatedEvent(udm.NewActivity(tenantID, udm.ActivityTypeCall)))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { _ = tt.run() })
		})
	}
}
