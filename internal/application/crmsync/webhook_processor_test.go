package crmsync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type webhookFixture struct {
	tenantID     uuid.UUID
	ledger       *memLedger
	companies    *MockCompanyRepository
	contacts     *MockContactRepository
	accountLinks *memLinkRepo
	contactLinks *memLinkRepo
	processor    *WebhookProcessor
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		tenantID:     uuid.New(),
		ledger:       newMemLedger(),
		companies:    new(MockCompanyRepository),
		contacts:     new(MockContactRepository),
		accountLinks: newMemLinkRepo(crm.LinkKindAccount),
		contactLinks: newMemLinkRepo(crm.LinkKindContact),
	}
	f.processor = NewWebhookProcessor(WebhookProcessorConfig{
		Ledger:       f.ledger,
		Engine:       NewMappingEngine(MappingEngineConfig{Repo: &memMappingRepo{}}),
		Companies:    f.companies,
		Contacts:     f.contacts,
		AccountLinks: f.accountLinks,
		ContactLinks: f.contactLinks,
		Logger:       zap.NewNop(),
	})
	return f
}

// linkedCompany stores a company modified at lastModified and links it to crmID
func (f *webhookFixture) linkedCompany(t *testing.T, crmID string, lastModified time.Time) *udm.Company {
	t.Helper()
	company := udm.NewCompany(f.tenantID, "Acme")
	company.City = udm.StringPtr("Berlin")
	company.LastModifiedTime = lastModified
	_, err := f.accountLinks.UpsertLink(context.Background(), f.tenantID, crm.SystemHubSpot, company.ID, crmID)
	require.NoError(t, err)
	f.companies.On("FindByID", mock.Anything, f.tenantID, company.ID).Return(company, nil)
	return company
}

func (f *webhookFixture) status(t *testing.T, eventID string) crm.WebhookEventStatus {
	t.Helper()
	ev, err := f.ledger.Get(context.Background(), crm.SystemHubSpot, eventID)
	require.NoError(t, err)
	require.NotNil(t, ev, "event %s not recorded", eventID)
	return ev.Status
}

func millis(ts time.Time) float64 {
	return float64(ts.UnixMilli())
}

func TestWebhookProcessor_AppliesCompanyChange(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	company := f.linkedCompany(t, "555", base)
	occurred := base.Add(time.Hour)

	var saved *udm.Company
	f.companies.On("Save", mock.Anything, mock.AnythingOfType("*udm.Company")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*udm.Company) }).
		Return(nil)

	res, err := f.processor.ProcessHubSpotCompanyEvents(ctx, f.tenantID, []map[string]any{{
		"eventId":       float64(1001),
		"objectId":      float64(555),
		"occurredAt":    millis(occurred),
		"propertyName":  "city",
		"propertyValue": "Hamburg",
	}})
	require.NoError(t, err)
	assert.Equal(t, &WebhookBatchResult{Received: 1, Processed: 1}, res)

	require.NotNil(t, saved)
	assert.Equal(t, company.ID, saved.ID)
	assert.Equal(t, "Hamburg", *saved.City)
	assert.True(t, occurred.Equal(saved.LastModifiedTime))
	assert.Equal(t, "hubspot_webhook", saved.ModifiedBy)
	assert.Equal(t, "Berlin", *company.City)
	assert.Equal(t, crm.WebhookStatusProcessed, f.status(t, "1001"))
}

func TestWebhookProcessor_Deduplicates(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.linkedCompany(t, "555", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f.companies.On("Save", mock.Anything, mock.Anything).Return(nil)

	batch := []map[string]any{{
		"eventId":    "e-1",
		"objectId":   "555",
		"properties": map[string]any{"name": "Acme Corp"},
	}}
	first, err := f.processor.ProcessHubSpotCompanyEvents(ctx, f.tenantID, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)

	second, err := f.processor.ProcessHubSpotCompanyEvents(ctx, f.tenantID, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 1, second.Duplicates)
	f.companies.AssertNumberOfCalls(t, "Save", 1)
}

func TestWebhookProcessor_MissingEventIDRejectsBatch(t *testing.T) {
	f := newWebhookFixture()
	_, err := f.processor.ProcessHubSpotEvents(context.Background(), f.tenantID, []map[string]any{
		{"eventId": "ok-1", "objectId": "1"},
		{"objectId": "2"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, crm.ErrMissingEventID)

	// Nothing from the batch was recorded
	ev, err := f.ledger.Get(context.Background(), crm.SystemHubSpot, "ok-1")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestWebhookProcessor_InvalidOccurredAt(t *testing.T) {
	f := newWebhookFixture()
	_, err := f.processor.ProcessHubSpotEvents(context.Background(), f.tenantID, []map[string]any{
		{"eventId": "e-1", "objectId": "1", "occurredAt": "yesterday"},
	})
	assert.ErrorIs(t, err, ErrInvalidWebhookPayload)
}

func TestWebhookProcessor_SkipStatuses(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	f.linkedCompany(t, "555", base)

	missing := uuid.New()
	_, err := f.accountLinks.UpsertLink(ctx, f.tenantID, crm.SystemHubSpot, missing, "666")
	require.NoError(t, err)
	f.companies.On("FindByID", mock.Anything, f.tenantID, missing).Return(nil, udm.ErrNotFound)

	res, err := f.processor.ProcessHubSpotCompanyEvents(ctx, f.tenantID, []map[string]any{
		{"eventId": "no-object"},
		{"eventId": "no-link", "objectId": "999"},
		{"eventId": "no-entity", "objectId": "666"},
		{"eventId": "stale", "objectId": "555", "occurredAt": millis(base.Add(-time.Minute))},
		{"eventId": "same-time", "objectId": "555", "occurredAt": json.Number("1769940000000")},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Received)
	assert.Equal(t, 5, res.Skipped)
	assert.Zero(t, res.Processed)

	assert.Equal(t, crm.WebhookStatusSkippedNoObjectID, f.status(t, "no-object"))
	assert.Equal(t, crm.WebhookStatusSkippedNoLink, f.status(t, "no-link"))
	assert.Equal(t, crm.WebhookStatusSkippedNoEntity, f.status(t, "no-entity"))
	assert.Equal(t, crm.WebhookStatusSkippedOutOfOrder, f.status(t, "stale"))
	assert.Equal(t, crm.WebhookStatusSkippedOutOfOrder, f.status(t, "same-time"))
	f.companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWebhookProcessor_FailureDoesNotStopBatch(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.linkedCompany(t, "555", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f.companies.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	f.companies.On("Save", mock.Anything, mock.Anything).Return(nil)

	res, err := f.processor.ProcessHubSpotCompanyEvents(ctx, f.tenantID, []map[string]any{
		{"eventId": "a", "objectId": "555", "properties": map[string]any{"city": "Bonn"}},
		{"eventId": "b", "objectId": "555", "properties": map[string]any{"numberofemployees": "lots"}},
		{"eventId": "c", "objectId": "555", "properties": map[string]any{"city": "Köln"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 1, res.Processed)

	ev, err := f.ledger.Get(ctx, crm.SystemHubSpot, "a")
	require.NoError(t, err)
	assert.Equal(t, crm.WebhookStatusFailed, ev.Status)
	require.NotNil(t, ev.LastError)
	assert.Contains(t, *ev.LastError, "disk full")
	assert.NotNil(t, ev.ProcessedAt)

	assert.Equal(t, crm.WebhookStatusFailed, f.status(t, "b"))
	assert.Equal(t, crm.WebhookStatusProcessed, f.status(t, "c"))
}

func TestWebhookProcessor_RoutesContactEvents(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()

	contact := udm.NewContact(f.tenantID, "Doe")
	contact.LastModifiedTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.contactLinks.UpsertLink(ctx, f.tenantID, crm.SystemHubSpot, contact.ID, "c-1")
	require.NoError(t, err)
	f.contacts.On("FindByID", mock.Anything, f.tenantID, contact.ID).Return(contact, nil)

	var saved *udm.Contact
	f.contacts.On("Save", mock.Anything, mock.AnythingOfType("*udm.Contact")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*udm.Contact) }).
		Return(nil)

	res, err := f.processor.ProcessHubSpotEvents(ctx, f.tenantID, []map[string]any{
		{
			"eventId":          "c-evt",
			"subscriptionType": "contact.propertyChange",
			"objectId":         "c-1",
			"propertyName":     "email",
			"propertyValue":    "jane@acme.example",
		},
		{
			"eventId":          "co-evt",
			"subscriptionType": "company.propertyChange",
			"objectId":         "c-1",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)

	require.NotNil(t, saved)
	require.NotNil(t, saved.Email1)
	assert.Equal(t, "jane@acme.example", *saved.Email1)
	assert.Equal(t, crm.WebhookStatusSkippedNoLink, f.status(t, "co-evt"))
	f.companies.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookProcessor_SkipsUnsupportedSubscriptionTypes(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.linkedCompany(t, "555", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f.companies.On("Save", mock.Anything, mock.Anything).Return(nil)

	res, err := f.processor.ProcessHubSpotEvents(ctx, f.tenantID, []map[string]any{
		{"eventId": "deal", "subscriptionType": "deal.propertyChange", "objectId": "555",
			"propertyName": "dealname", "propertyValue": "Big deal"},
		{"eventId": "ticket", "subscriptionType": "ticket.creation", "objectId": "555"},
		{"eventId": "company", "subscriptionType": "Company.propertyChange", "objectId": "555",
			"propertyName": "city", "propertyValue": "Bonn"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Received)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, res.Processed)

	assert.Equal(t, crm.WebhookStatusSkippedUnsupported, f.status(t, "deal"))
	assert.Equal(t, crm.WebhookStatusSkippedUnsupported, f.status(t, "ticket"))
	assert.Equal(t, crm.WebhookStatusProcessed, f.status(t, "company"))
	f.companies.AssertNumberOfCalls(t, "FindByID", 1)
	f.companies.AssertNumberOfCalls(t, "Save", 1)
}

func TestObjectTypeForSubscription(t *testing.T) {
	tests := []struct {
		subType string
		want    crm.ObjectType
	}{
		{"", crm.ObjectTypeCompany},
		{"company.propertychange", crm.ObjectTypeCompany},
		{"company.creation", crm.ObjectTypeCompany},
		{"contact.propertychange", crm.ObjectTypeContact},
		{"deal.propertychange", ""},
		{"ticket.deletion", ""},
		{"companyish", ""},
	}
	for _, tt := range tests {
		t.Run(tt.subType, func(t *testing.T) {
			assert.Equal(t, tt.want, objectTypeForSubscription(tt.subType))
		})
	}
}
