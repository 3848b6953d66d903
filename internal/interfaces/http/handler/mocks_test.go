package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/stretchr/testify/mock"
)

// MockConnectionManager is a mock implementation of ConnectionManager
type MockConnectionManager struct {
	mock.Mock
}

func (m *MockConnectionManager) InitiateHubSpot(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

func (m *MockConnectionManager) CompleteHubSpot(ctx context.Context, tenantID uuid.UUID, code, state, actor string) error {
	args := m.Called(ctx, tenantID, code, state, actor)
	return args.Error(0)
}

func (m *MockConnectionManager) Status(ctx context.Context, tenantID uuid.UUID, system crm.System) (*crmsync.ConnectionResponse, error) {
	args := m.Called(ctx, tenantID, system)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmsync.ConnectionResponse), args.Error(1)
}

func (m *MockConnectionManager) Disconnect(ctx context.Context, tenantID uuid.UUID, system crm.System) error {
	args := m.Called(ctx, tenantID, system)
	return args.Error(0)
}

func (m *MockConnectionManager) ListConnected(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.System), args.Error(1)
}

func (m *MockConnectionManager) AdminUpsert(ctx context.Context, tenantID uuid.UUID, req crmsync.UpsertCredentialsRequest) error {
	args := m.Called(ctx, tenantID, req)
	return args.Error(0)
}

// MockFieldMappingManager is a mock implementation of FieldMappingManager
type MockFieldMappingManager struct {
	mock.Mock
}

func (m *MockFieldMappingManager) List(ctx context.Context, tenantID uuid.UUID, system crm.System) ([]crmsync.FieldMappingResponse, error) {
	args := m.Called(ctx, tenantID, system)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crmsync.FieldMappingResponse), args.Error(1)
}

func (m *MockFieldMappingManager) Create(ctx context.Context, tenantID uuid.UUID, system crm.System, req crmsync.CreateFieldMappingRequest) (*crmsync.FieldMappingResponse, error) {
	args := m.Called(ctx, tenantID, system, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmsync.FieldMappingResponse), args.Error(1)
}

func (m *MockFieldMappingManager) Update(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID, req crmsync.UpdateFieldMappingRequest) (*crmsync.FieldMappingResponse, error) {
	args := m.Called(ctx, tenantID, system, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmsync.FieldMappingResponse), args.Error(1)
}

func (m *MockFieldMappingManager) Delete(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, system, id)
	return args.Error(0)
}

// MockResyncer is a mock implementation of Resyncer
type MockResyncer struct {
	mock.Mock
}

func (m *MockResyncer) ResyncCompany(ctx context.Context, tenantID, companyID uuid.UUID) (map[crm.System]*crm.SyncResult, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[crm.System]*crm.SyncResult), args.Error(1)
}

func (m *MockResyncer) ListLinks(ctx context.Context, tenantID uuid.UUID, kind crm.LinkKind, system crm.System, limit, offset int) ([]crmsync.LinkResponse, error) {
	args := m.Called(ctx, tenantID, kind, system, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crmsync.LinkResponse), args.Error(1)
}

// MockEventProcessor is a mock implementation of HubSpotEventProcessor
type MockEventProcessor struct {
	mock.Mock
}

func (m *MockEventProcessor) ProcessHubSpotEvents(ctx context.Context, tenantID uuid.UUID, raw []map[string]any) (*crmsync.WebhookBatchResult, error) {
	args := m.Called(ctx, tenantID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmsync.WebhookBatchResult), args.Error(1)
}

// performRequest sends body (marshalled unless it is already []byte) through router
func performRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// withUser simulates the JWT middleware
func withUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("jwt_user_id", "user-1")
		c.Set("jwt_username", username)
		c.Next()
	}
}

// MockChangePublisher is a mock implementation of ChangePublisher
type MockChangePublisher struct {
	mock.Mock
}

func (m *MockChangePublisher) Notify(ctx context.Context, tenantID uuid.UUID, notice crmsync.ChangeNotice) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, notice)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
