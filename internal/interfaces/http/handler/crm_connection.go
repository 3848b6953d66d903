package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
)

// ConnectionManager is the connection surface used by the tenant and admin endpoints
type ConnectionManager interface {
	InitiateHubSpot(ctx context.Context, tenantID uuid.UUID) (string, error)
	CompleteHubSpot(ctx context.Context, tenantID uuid.UUID, code, state, actor string) error
	Status(ctx context.Context, tenantID uuid.UUID, system crm.System) (*crmsync.ConnectionResponse, error)
	Disconnect(ctx context.Context, tenantID uuid.UUID, system crm.System) error
	ListConnected(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error)
	AdminUpsert(ctx context.Context, tenantID uuid.UUID, req crmsync.UpsertCredentialsRequest) error
}

// ConnectInitiateResponse carries the vendor consent URL
type ConnectInitiateResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// OAuthCallbackRequest is posted by the frontend after the vendor redirect
type OAuthCallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
	Actor string `json:"actor,omitempty"`
}

// ConnectedSystemsResponse lists the tenant's enabled CRM systems
type ConnectedSystemsResponse struct {
	Systems []crm.System `json:"systems"`
}

// CRMConnectionHandler handles the HubSpot connect flow and connection status
type CRMConnectionHandler struct {
	BaseHandler
	connections ConnectionManager
}

// NewCRMConnectionHandler creates a new CRMConnectionHandler
func NewCRMConnectionHandler(connections ConnectionManager) *CRMConnectionHandler {
	return &CRMConnectionHandler{connections: connections}
}

// InitiateHubSpot godoc
// @Summary      Start the HubSpot connect flow
// @Description  Returns the HubSpot consent URL carrying a signed one-time state
// @Tags         crm-connections
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=ConnectInitiateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/hubspot/connect/initiate [post]
// @Security     BearerAuth
func (h *CRMConnectionHandler) InitiateHubSpot(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	url, err := h.connections.InitiateHubSpot(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ConnectInitiateResponse{AuthorizationURL: url})
}

// HubSpotCallback godoc
// @Summary      Complete the HubSpot connect flow
// @Description  Exchanges the authorization code and stores the tenant connection
// @Tags         crm-connections
// @Accept       json
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        request body OAuthCallbackRequest true "Authorization code and state"
// @Success      204 "Connected"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/hubspot/oauth/callback [post]
// @Security     BearerAuth
func (h *CRMConnectionHandler) HubSpotCallback(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	var req OAuthCallbackRequest
	if !h.BindJSON(c, &req) {
		return
	}
	actor := req.Actor
	if actor == "" {
		actor = actorFromContext(c)
	}
	if err := h.connections.CompleteHubSpot(c.Request.Context(), tenantID, req.Code, req.State, actor); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetHubSpotStatus godoc
// @Summary      Get the HubSpot connection
// @Description  Returns the stored HubSpot connection without secrets
// @Tags         crm-connections
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmsync.ConnectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/hubspot [get]
// @Security     BearerAuth
func (h *CRMConnectionHandler) GetHubSpotStatus(c *gin.Context) {
	h.status(c, crm.SystemHubSpot)
}

// DisconnectHubSpot godoc
// @Summary      Disconnect HubSpot
// @Description  Disables the tenant HubSpot connection
// @Tags         crm-connections
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Success      204 "Disconnected"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/hubspot [delete]
// @Security     BearerAuth
func (h *CRMConnectionHandler) DisconnectHubSpot(c *gin.Context) {
	h.disconnect(c, crm.SystemHubSpot)
}

// ListConnections godoc
// @Summary      List connected CRM systems
// @Description  Returns the CRM systems with an enabled connection
// @Tags         crm-connections
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=ConnectedSystemsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/connections [get]
// @Security     BearerAuth
func (h *CRMConnectionHandler) ListConnections(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	systems, err := h.connections.ListConnected(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if systems == nil {
		systems = []crm.System{}
	}
	h.Success(c, ConnectedSystemsResponse{Systems: systems})
}

func (h *CRMConnectionHandler) status(c *gin.Context, system crm.System) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	resp, err := h.connections.Status(c.Request.Context(), tenantID, system)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *CRMConnectionHandler) disconnect(c *gin.Context, system crm.System) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	if err := h.connections.Disconnect(c.Request.Context(), tenantID, system); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
