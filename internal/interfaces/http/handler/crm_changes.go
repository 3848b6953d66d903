package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/interfaces/http/dto"
)

// ChangePublisher queues entity change notices for asynchronous sync
type ChangePublisher interface {
	Notify(ctx context.Context, tenantID uuid.UUID, notice crmsync.ChangeNotice) (uuid.UUID, error)
}

// ChangeAccepted acknowledges a queued change notice
type ChangeAccepted struct {
	EventID uuid.UUID `json:"event_id"`
}

// CRMChangeHandler accepts entity change notices from the host application
type CRMChangeHandler struct {
	BaseHandler
	changes ChangePublisher
}

// NewCRMChangeHandler creates a new CRMChangeHandler
func NewCRMChangeHandler(changes ChangePublisher) *CRMChangeHandler {
	return &CRMChangeHandler{changes: changes}
}

// Notify godoc
// @Summary      Queue a change notice
// @Description  Queues an entity change for asynchronous sync to the connected CRM systems
// @Tags         crm-sync
// @Accept       json
// @Produce      json
// @Param        tenant_id path string true "Tenant ID" format(uuid)
// @Param        request body crmsync.ChangeNotice true "Change notice"
// @Success      202 {object} dto.Response{data=ChangeAccepted}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{tenant_id}/crm/sync/changes [post]
// @Security     BearerAuth
func (h *CRMChangeHandler) Notify(c *gin.Context) {
	tenantID, err := pathTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	var notice crmsync.ChangeNotice
	if !h.BindJSON(c, &notice) {
		return
	}
	eventID, err := h.changes.Notify(c.Request.Context(), tenantID, notice)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(ChangeAccepted{EventID: eventID}))
}
