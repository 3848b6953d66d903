package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/leadlane/backend/internal/application/crmsync"
)

// CRMAdminHandler lets operators manage tenant credentials directly
type CRMAdminHandler struct {
	CRMConnectionHandler
}

// NewCRMAdminHandler creates a new CRMAdminHandler
func NewCRMAdminHandler(connections ConnectionManager) *CRMAdminHandler {
	return &CRMAdminHandler{CRMConnectionHandler: CRMConnectionHandler{connections: connections}}
}

// UpsertCredentials godoc
// @Summary      Store tenant credentials
// @Description  Inserts or replaces the tenant connection for a CRM system
// @Tags         crm-admin
// @Accept       json
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        request body crmsync.UpsertCredentialsRequest true "Credentials"
// @Success      204 "Stored"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/tenants/{tenant_id}/crm/credentials [post]
// @Security     BearerAuth
func (h *CRMAdminHandler) UpsertCredentials(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	var req crmsync.UpsertCredentialsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Actor == "" {
		req.Actor = actorFromContext(c)
	}
	if err := h.connections.AdminUpsert(c.Request.Context(), tenantID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetCredentials godoc
// @Summary      Get tenant credentials
// @Description  Returns the stored connection without secrets
// @Tags         crm-admin
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Success      200 {object} dto.Response{data=crmsync.ConnectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/tenants/{tenant_id}/crm/{crm_system} [get]
// @Security     BearerAuth
func (h *CRMAdminHandler) GetCredentials(c *gin.Context) {
	system, err := pathSystem(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.status(c, system)
}

// DisableCredentials godoc
// @Summary      Disable tenant credentials
// @Description  Disables the tenant connection for a CRM system
// @Tags         crm-admin
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Success      204 "Disabled"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/tenants/{tenant_id}/crm/{crm_system} [delete]
// @Security     BearerAuth
func (h *CRMAdminHandler) DisableCredentials(c *gin.Context) {
	system, err := pathSystem(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.disconnect(c, system)
}
