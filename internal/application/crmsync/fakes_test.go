package crmsync

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/stretchr/testify/mock"
)

// ---------------------------------------------------------------------------
// In-memory connection repository
// ---------------------------------------------------------------------------

type memConnectionRepo struct {
	mu      sync.Mutex
	rows    map[string]*crm.Connection
	upserts int
}

func newMemConnectionRepo() *memConnectionRepo {
	return &memConnectionRepo{rows: make(map[string]*crm.Connection)}
}

func connKey(tenantID uuid.UUID, system crm.System) string {
	return tenantID.String() + "|" + string(system)
}

func (r *memConnectionRepo) Get(_ context.Context, tenantID uuid.UUID, system crm.System) (*crm.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[connKey(tenantID, system)].Clone(), nil
}

func (r *memConnectionRepo) ListEnabledSystems(_ context.Context, tenantID uuid.UUID) ([]crm.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crm.System
	for _, c := range r.rows {
		if c.TenantID == tenantID && c.IsEnabled {
			out = append(out, c.System)
		}
	}
	return out, nil
}

func (r *memConnectionRepo) ListExpiring(_ context.Context, system crm.System, before time.Time) ([]crm.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crm.Connection
	for _, c := range r.rows {
		if c.System == system && c.IsEnabled && c.ExpiresAt != nil && c.ExpiresAt.Before(before) {
			out = append(out, *c.Clone())
		}
	}
	return out, nil
}

func (r *memConnectionRepo) Upsert(_ context.Context, conn *crm.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	cp := conn.Clone()
	if prev, ok := r.rows[connKey(conn.TenantID, conn.System)]; ok {
		cp.CreatedTime = prev.CreatedTime
		cp.CreatedBy = prev.CreatedBy
	}
	r.rows[connKey(conn.TenantID, conn.System)] = cp
	return nil
}

func (r *memConnectionRepo) Disable(_ context.Context, tenantID uuid.UUID, system crm.System, actor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.rows[connKey(tenantID, system)]; ok {
		c.IsEnabled = false
		c.ModifiedBy = actor
	}
	return nil
}

func (r *memConnectionRepo) put(conn *crm.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[connKey(conn.TenantID, conn.System)] = conn.Clone()
}

// ---------------------------------------------------------------------------
// In-memory field mapping repository
// ---------------------------------------------------------------------------

type memMappingRepo struct {
	mu          sync.Mutex
	records     []crm.FieldMapping
	findActives int
}

func (r *memMappingRepo) FindActive(_ context.Context, tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) ([]crm.FieldMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findActives++
	var global, tenant []crm.FieldMapping
	for _, m := range r.records {
		if m.System != system || m.ObjectType != objectType || !m.IsActive {
			continue
		}
		switch {
		case m.TenantID == nil:
			global = append(global, m)
		case *m.TenantID == tenantID:
			tenant = append(tenant, m)
		}
	}
	return append(global, tenant...), nil
}

func (r *memMappingRepo) FindByID(_ context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) (*crm.FieldMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		m := r.records[i]
		if m.ID == id && m.System == system && m.TenantID != nil && *m.TenantID == tenantID {
			return &m, nil
		}
	}
	return nil, crm.ErrMappingNotFound
}

func (r *memMappingRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, system crm.System) ([]crm.FieldMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crm.FieldMapping
	for _, m := range r.records {
		if m.System == system && m.TenantID != nil && *m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObjectType != out[j].ObjectType {
			return out[i].ObjectType < out[j].ObjectType
		}
		return out[i].UDMField < out[j].UDMField
	})
	return out, nil
}

func (r *memMappingRepo) ExistsForUDMField(_ context.Context, tenantID uuid.UUID, system crm.System, objectType crm.ObjectType, udmField string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.records {
		if m.System == system && m.ObjectType == objectType && m.TenantID != nil && *m.TenantID == tenantID &&
			strings.EqualFold(m.UDMField, udmField) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMappingRepo) Create(_ context.Context, m *crm.FieldMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *m)
	return nil
}

func (r *memMappingRepo) Update(_ context.Context, m *crm.FieldMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == m.ID {
			r.records[i] = *m
			return nil
		}
	}
	return crm.ErrMappingNotFound
}

func (r *memMappingRepo) Delete(_ context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		m := r.records[i]
		if m.ID == id && m.System == system && m.TenantID != nil && *m.TenantID == tenantID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return crm.ErrMappingNotFound
}

// ---------------------------------------------------------------------------
// In-memory link repository
// ---------------------------------------------------------------------------

type memLinkRepo struct {
	mu    sync.Mutex
	kind  crm.LinkKind
	links map[string]*crm.Link
}

func newMemLinkRepo(kind crm.LinkKind) *memLinkRepo {
	return &memLinkRepo{kind: kind, links: make(map[string]*crm.Link)}
}

func linkKey(tenantID uuid.UUID, system crm.System, internalID uuid.UUID) string {
	return tenantID.String() + "|" + string(system) + "|" + internalID.String()
}

func (r *memLinkRepo) Kind() crm.LinkKind { return r.kind }

func (r *memLinkRepo) UpsertLink(_ context.Context, tenantID uuid.UUID, system crm.System, internalID uuid.UUID, crmID string) (*crm.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := linkKey(tenantID, system, internalID)
	now := time.Now().UTC()
	l, ok := r.links[key]
	if !ok {
		l = &crm.Link{ID: uuid.New(), TenantID: tenantID, System: system, InternalID: internalID, CreatedTime: now}
		r.links[key] = l
	}
	l.CRMID = crmID
	l.LastModifiedTime = now
	cp := *l
	return &cp, nil
}

func (r *memLinkRepo) GetByInternalID(_ context.Context, tenantID uuid.UUID, system crm.System, internalID uuid.UUID) (*crm.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.links[linkKey(tenantID, system, internalID)]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *memLinkRepo) GetByCRMID(_ context.Context, tenantID uuid.UUID, system crm.System, crmID string) (*crm.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.TenantID == tenantID && l.System == system && l.CRMID == crmID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLinkRepo) ListForTenantAndSystem(_ context.Context, tenantID uuid.UUID, system crm.System, limit, offset int) ([]crm.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crm.Link
	for _, l := range r.links {
		if l.TenantID == tenantID && l.System == system {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InternalID.String() < out[j].InternalID.String() })
	if offset >= len(out) {
		return []crm.Link{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory webhook ledger
// ---------------------------------------------------------------------------

type memLedger struct {
	mu     sync.Mutex
	events map[string]*crm.WebhookEvent
}

func newMemLedger() *memLedger {
	return &memLedger{events: make(map[string]*crm.WebhookEvent)}
}

func (l *memLedger) TryMarkReceived(_ context.Context, system crm.System, eventID string, occurredAt *time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := string(system) + "|" + eventID
	if _, ok := l.events[key]; ok {
		return false, nil
	}
	l.events[key] = &crm.WebhookEvent{System: system, EventID: eventID, ReceivedAt: time.Now().UTC(), OccurredAt: occurredAt, Status: crm.WebhookStatusReceived}
	return true, nil
}

func (l *memLedger) MarkProcessed(_ context.Context, system crm.System, eventID string, status crm.WebhookEventStatus, lastError *string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ev, ok := l.events[string(system)+"|"+eventID]; ok {
		now := time.Now().UTC()
		ev.Status = status
		ev.ProcessedAt = &now
		ev.LastError = lastError
	}
	return nil
}

func (l *memLedger) Get(_ context.Context, system crm.System, eventID string) (*crm.WebhookEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ev, ok := l.events[string(system)+"|"+eventID]; ok {
		cp := *ev
		return &cp, nil
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// MockClient is a mock implementation of crm.Client
type MockClient struct {
	mock.Mock
	system crm.System
}

func (m *MockClient) System() crm.System { return m.system }

func (m *MockClient) CheckAuth(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) RefreshAuth(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) UpsertCompany(ctx context.Context, payload *crm.CompanyPayload, existingCRMID string) (*crm.SyncResult, error) {
	args := m.Called(ctx, payload, existingCRMID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SyncResult), args.Error(1)
}

func (m *MockClient) UpsertContact(ctx context.Context, payload *crm.ContactPayload, existingCRMID string) (*crm.SyncResult, error) {
	args := m.Called(ctx, payload, existingCRMID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SyncResult), args.Error(1)
}

func (m *MockClient) UpsertDeal(ctx context.Context, payload *crm.DealPayload, existingCRMID string) (*crm.SyncResult, error) {
	args := m.Called(ctx, payload, existingCRMID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SyncResult), args.Error(1)
}

func (m *MockClient) GetDeal(ctx context.Context, crmID string) (*crm.DealPayload, error) {
	args := m.Called(ctx, crmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.DealPayload), args.Error(1)
}

func (m *MockClient) CreateActivity(ctx context.Context, payload *crm.ActivityPayload) (*crm.SyncResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SyncResult), args.Error(1)
}

// MockClientFactory is a mock implementation of crm.ClientFactory
type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) NewClient(system crm.System, conn *crm.Connection) (crm.Client, error) {
	args := m.Called(system, conn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crm.Client), args.Error(1)
}

// MockCompanyRepository is a mock implementation of udm.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*udm.Company, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*udm.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *udm.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockContactRepository is a mock implementation of udm.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*udm.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*udm.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *udm.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func enabledConnection(tenantID uuid.UUID, system crm.System) *crm.Connection {
	now := time.Now().UTC()
	return &crm.Connection{
		TenantID:         tenantID,
		System:           system,
		AccessToken:      "token-" + string(system),
		TokenType:        crm.DefaultTokenType,
		IsEnabled:        true,
		CreatedTime:      now,
		LastModifiedTime: now,
		CreatedBy:        crm.SystemActor,
		ModifiedBy:       crm.SystemActor,
	}
}
