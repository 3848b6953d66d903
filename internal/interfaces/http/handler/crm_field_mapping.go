package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
)

// FieldMappingManager manages tenant field mapping overrides
type FieldMappingManager interface {
	List(ctx context.Context, tenantID uuid.UUID, system crm.System) ([]crmsync.FieldMappingResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, system crm.System, req crmsync.CreateFieldMappingRequest) (*crmsync.FieldMappingResponse, error)
	Update(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID, req crmsync.UpdateFieldMappingRequest) (*crmsync.FieldMappingResponse, error)
	Delete(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) error
}

// CRMFieldMappingHandler serves the field mapping CRUD endpoints
type CRMFieldMappingHandler struct {
	BaseHandler
	mappings FieldMappingManager
}

// NewCRMFieldMappingHandler creates a new CRMFieldMappingHandler
func NewCRMFieldMappingHandler(mappings FieldMappingManager) *CRMFieldMappingHandler {
	return &CRMFieldMappingHandler{mappings: mappings}
}

// List godoc
// @Summary      List field mappings
// @Description  Lists the tenant field mapping overrides for one CRM system
// @Tags         crm-field-mappings
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Success      200 {object} dto.Response{data=[]crmsync.FieldMappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/field-mappings/{crm_system} [get]
// @Security     BearerAuth
func (h *CRMFieldMappingHandler) List(c *gin.Context) {
	tenantID, system, ok := h.scope(c)
	if !ok {
		return
	}
	mappings, err := h.mappings.List(c.Request.Context(), tenantID, system)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mappings)
}

// Create godoc
// @Summary      Create a field mapping
// @Description  Adds a tenant override mapping an internal field to a CRM property
// @Tags         crm-field-mappings
// @Accept       json
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Param        request body crmsync.CreateFieldMappingRequest true "Mapping"
// @Success      201 {object} dto.Response{data=crmsync.FieldMappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/field-mappings/{crm_system} [post]
// @Security     BearerAuth
func (h *CRMFieldMappingHandler) Create(c *gin.Context) {
	tenantID, system, ok := h.scope(c)
	if !ok {
		return
	}
	var req crmsync.CreateFieldMappingRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.UDMFieldName = strings.TrimSpace(req.UDMFieldName)
	req.CRMFieldName = strings.TrimSpace(req.CRMFieldName)
	if req.UDMFieldName == "" || req.CRMFieldName == "" {
		h.BadRequest(c, "udm_field_name and crm_field_name must not be blank")
		return
	}

	mapping, err := h.mappings.Create(c.Request.Context(), tenantID, system, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, mapping)
}

// Update godoc
// @Summary      Update a field mapping
// @Description  Changes the CRM property or the active flag of a tenant override
// @Tags         crm-field-mappings
// @Accept       json
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Param        mapping_id path string true "Mapping ID" format(uuid)
// @Param        request body crmsync.UpdateFieldMappingRequest true "Changes"
// @Success      200 {object} dto.Response{data=crmsync.FieldMappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/field-mappings/{crm_system}/{mapping_id} [patch]
// @Security     BearerAuth
func (h *CRMFieldMappingHandler) Update(c *gin.Context) {
	tenantID, system, ok := h.scope(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("mapping_id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}
	var req crmsync.UpdateFieldMappingRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.CRMFieldName != nil {
		trimmed := strings.TrimSpace(*req.CRMFieldName)
		if trimmed == "" {
			h.BadRequest(c, "crm_field_name must not be blank")
			return
		}
		req.CRMFieldName = &trimmed
	}

	mapping, err := h.mappings.Update(c.Request.Context(), tenantID, system, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapping)
}

// Delete godoc
// @Summary      Delete a field mapping
// @Description  Removes a tenant override
// @Tags         crm-field-mappings
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Param        mapping_id path string true "Mapping ID" format(uuid)
// @Success      204 "Deleted"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/field-mappings/{crm_system}/{mapping_id} [delete]
// @Security     BearerAuth
func (h *CRMFieldMappingHandler) Delete(c *gin.Context) {
	tenantID, system, ok := h.scope(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("mapping_id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}
	if err := h.mappings.Delete(c.Request.Context(), tenantID, system, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CRMFieldMappingHandler) scope(c *gin.Context) (uuid.UUID, crm.System, bool) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return uuid.Nil, "", false
	}
	system, err := pathSystem(c)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, "", false
	}
	return tenantID, system, true
}
