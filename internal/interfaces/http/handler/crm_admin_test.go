package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/leadlane/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(m ConnectionManager) *gin.Engine {
	h := NewCRMAdminHandler(m)
	router := gin.New()
	router.Use(withUser("ops"))
	g := router.Group("/api/v1/admin/tenants/:tenant_id/crm")
	g.POST("/credentials", h.UpsertCredentials)
	g.GET("/:crm_system", h.GetCredentials)
	g.DELETE("/:crm_system", h.DisableCredentials)
	return router
}

func TestCRMAdminHandler_UpsertCredentials(t *testing.T) {
	tenantID := uuid.New()
	path := "/api/v1/admin/tenants/" + tenantID.String() + "/crm/credentials"

	t.Run("defaults the actor to the caller", func(t *testing.T) {
		m := &MockConnectionManager{}
		m.On("AdminUpsert", mock.Anything, tenantID, mock.MatchedBy(func(req crmsync.UpsertCredentialsRequest) bool {
			return req.CRMSystem == "hubspot" && req.AccessToken == "at" && req.Actor == "ops"
		})).Return(nil)

		w := performRequest(newAdminRouter(m), http.MethodPost, path,
			map[string]any{"crm_system": "hubspot", "access_token": "at"}, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("missing access token", func(t *testing.T) {
		w := performRequest(newAdminRouter(&MockConnectionManager{}), http.MethodPost, path,
			map[string]any{"crm_system": "hubspot"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown system", func(t *testing.T) {
		m := &MockConnectionManager{}
		m.On("AdminUpsert", mock.Anything, tenantID, mock.Anything).
			Return(shared.NewDomainError(crmsync.CodeUnknownSystem, "Unknown CRM system"))

		w := performRequest(newAdminRouter(m), http.MethodPost, path,
			map[string]any{"crm_system": "zoho", "access_token": "at"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeCRMUnknownSystem, decodeResponse(t, w).Error.Code)
	})
}

func TestCRMAdminHandler_GetAndDisable(t *testing.T) {
	tenantID := uuid.New()
	base := "/api/v1/admin/tenants/" + tenantID.String() + "/crm/"

	m := &MockConnectionManager{}
	m.On("Status", mock.Anything, tenantID, crm.SystemSalesforce).
		Return(&crmsync.ConnectionResponse{TenantID: tenantID, CRMSystem: crm.SystemSalesforce, IsEnabled: true}, nil)
	m.On("Status", mock.Anything, tenantID, crm.SystemSAPB1).
		Return(nil, shared.NewDomainError(crmsync.CodeNotConnected, "CRM connection not found"))
	m.On("Disconnect", mock.Anything, tenantID, crm.SystemSalesforce).Return(nil)
	router := newAdminRouter(m)

	w := performRequest(router, http.MethodGet, base+"salesforce", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "salesforce", decodeResponse(t, w).Data.(map[string]any)["crm_system"])

	w = performRequest(router, http.MethodGet, base+string(crm.SystemSAPB1), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodDelete, base+"salesforce", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, http.MethodGet, base+"zoho", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
