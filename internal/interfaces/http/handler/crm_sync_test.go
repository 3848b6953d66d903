package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSyncRouter(r Resyncer) *gin.Engine {
	h := NewCRMSyncHandler(r)
	router := gin.New()
	g := router.Group("/api/v1/tenants/:tenant_id/crm")
	g.POST("/sync/companies/:company_id", h.ResyncCompany)
	g.GET("/links/:kind/:crm_system", h.ListLinks)
	return router
}

func TestCRMSyncHandler_ResyncCompany(t *testing.T) {
	tenantID := uuid.New()
	companyID := uuid.New()
	path := "/api/v1/tenants/" + tenantID.String() + "/crm/sync/companies/" + companyID.String()

	t.Run("returns results per system", func(t *testing.T) {
		r := &MockResyncer{}
		r.On("ResyncCompany", mock.Anything, tenantID, companyID).Return(map[crm.System]*crm.SyncResult{
			crm.SystemHubSpot: {Success: true, System: crm.SystemHubSpot, ObjectType: crm.ObjectTypeCompany, CRMID: "901"},
		}, nil)

		w := performRequest(newSyncRouter(r), http.MethodPost, path, nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		hubspot := data["hubspot"].(map[string]any)
		assert.Equal(t, true, hubspot["success"])
		assert.Equal(t, "901", hubspot["crm_id"])
	})

	t.Run("company not found", func(t *testing.T) {
		r := &MockResyncer{}
		r.On("ResyncCompany", mock.Anything, tenantID, companyID).
			Return(nil, shared.NewDomainError(crmsync.CodeNotFound, "Company not found"))

		w := performRequest(newSyncRouter(r), http.MethodPost, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		r := &MockResyncer{}
		r.On("ResyncCompany", mock.Anything, tenantID, companyID).Return(nil, errors.New("db down"))

		w := performRequest(newSyncRouter(r), http.MethodPost, path, nil, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("bad company id", func(t *testing.T) {
		w := performRequest(newSyncRouter(&MockResyncer{}), http.MethodPost,
			"/api/v1/tenants/"+tenantID.String()+"/crm/sync/companies/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCRMSyncHandler_ListLinks(t *testing.T) {
	tenantID := uuid.New()
	base := "/api/v1/tenants/" + tenantID.String() + "/crm/links/"

	t.Run("passes paging through", func(t *testing.T) {
		r := &MockResyncer{}
		r.On("ListLinks", mock.Anything, tenantID, crm.LinkKindContact, crm.SystemHubSpot, 10, 20).
			Return([]crmsync.LinkResponse{{ID: uuid.New(), CRMSystem: crm.SystemHubSpot, CRMID: "51"}}, nil)

		w := performRequest(newSyncRouter(r), http.MethodGet, base+"contact/hubspot?limit=10&offset=20", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 10, resp.Meta.Limit)
		assert.Equal(t, 20, resp.Meta.Offset)
		assert.Len(t, resp.Data.([]any), 1)
	})

	t.Run("default limit", func(t *testing.T) {
		r := &MockResyncer{}
		r.On("ListLinks", mock.Anything, tenantID, crm.LinkKindAccount, crm.SystemSalesforce, 100, 0).
			Return([]crmsync.LinkResponse{}, nil)

		w := performRequest(newSyncRouter(r), http.MethodGet, base+"account/salesforce", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		r.AssertExpectations(t)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := performRequest(newSyncRouter(&MockResyncer{}), http.MethodGet, base+"invoice/hubspot", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limit out of range", func(t *testing.T) {
		w := performRequest(newSyncRouter(&MockResyncer{}), http.MethodGet, base+"contact/hubspot?limit=5000", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
