package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/interfaces/http/dto"
)

// Resyncer triggers manual syncs and exposes link tables
type Resyncer interface {
	ResyncCompany(ctx context.Context, tenantID, companyID uuid.UUID) (map[crm.System]*crm.SyncResult, error)
	ListLinks(ctx context.Context, tenantID uuid.UUID, kind crm.LinkKind, system crm.System, limit, offset int) ([]crmsync.LinkResponse, error)
}

// CRMSyncHandler serves manual resync and link listing
type CRMSyncHandler struct {
	BaseHandler
	resync Resyncer
}

// NewCRMSyncHandler creates a new CRMSyncHandler
func NewCRMSyncHandler(resync Resyncer) *CRMSyncHandler {
	return &CRMSyncHandler{resync: resync}
}

// ResyncCompany godoc
// @Summary      Resync a company
// @Description  Pushes the company to every connected CRM system and returns the per-system results
// @Tags         crm-sync
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        company_id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=map[string]crm.SyncResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/sync/companies/{company_id} [post]
// @Security     BearerAuth
func (h *CRMSyncHandler) ResyncCompany(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	companyID, err := uuid.Parse(c.Param("company_id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}
	results, err := h.resync.ResyncCompany(c.Request.Context(), tenantID, companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// ListLinks godoc
// @Summary      List CRM links
// @Description  Lists links between internal records and CRM objects
// @Tags         crm-sync
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        kind path string true "Link kind" Enums(account, contact, opportunity)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Param        limit query int false "Page size" default(50)
// @Param        offset query int false "Offset" default(0)
// @Success      200 {object} dto.Response{data=[]crmsync.LinkResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/links/{kind}/{crm_system} [get]
// @Security     BearerAuth
func (h *CRMSyncHandler) ListLinks(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	kind, err := crm.ParseLinkKind(c.Param("kind"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "Unknown link kind")
		return
	}
	system, err := pathSystem(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidation, "Invalid limit or offset")
		return
	}
	page.Normalize()

	links, err := h.resync.ListLinks(c.Request.Context(), tenantID, kind, system, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, links, int64(len(links)), page.Limit, page.Offset)
}
