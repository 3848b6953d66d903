package router

import (
	"github.com/gin-gonic/gin"
	"github.com/leadlane/backend/internal/interfaces/http/handler"
)

// CRMHandlers holds the handlers mounted by CRMRoutes
type CRMHandlers struct {
	Webhook      *handler.CRMWebhookHandler
	Connection   *handler.CRMConnectionHandler
	Admin        *handler.CRMAdminHandler
	FieldMapping *handler.CRMFieldMappingHandler
	Sync         *handler.CRMSyncHandler
	Changes      *handler.CRMChangeHandler
}

// CRMGuards are the authentication middlewares for the tenant and admin groups.
// Auth runs first on both; TenantMatch and Admin run after it.
type CRMGuards struct {
	Auth        gin.HandlerFunc
	TenantMatch gin.HandlerFunc
	Admin       gin.HandlerFunc
}

// CRMRoutes builds the webhook, tenant and admin route groups.
// Webhooks are authenticated by signature only.
func CRMRoutes(h CRMHandlers, guards CRMGuards) []RouteRegistrar {
	webhooks := NewDomainGroup("crm-webhooks", "/crm/webhooks")
	webhooks.POST("/:crm_system", h.Webhook.Receive)

	tenant := NewDomainGroup("crm", "/tenants/:tenant_id/crm").
		Use(nonNil(guards.Auth, guards.TenantMatch)...)
	tenant.POST("/hubspot/connect/initiate", h.Connection.InitiateHubSpot).
		POST("/hubspot/oauth/callback", h.Connection.HubSpotCallback).
		GET("/hubspot", h.Connection.GetHubSpotStatus).
		DELETE("/hubspot", h.Connection.DisconnectHubSpot).
		GET("/connections", h.Connection.ListConnections)

	tenant.Group("field-mappings", "/field-mappings/:crm_system").
		GET("", h.FieldMapping.List).
		POST("", h.FieldMapping.Create).
		PATCH("/:mapping_id", h.FieldMapping.Update).
		DELETE("/:mapping_id", h.FieldMapping.Delete)

	tenant.POST("/sync/companies/:company_id", h.Sync.ResyncCompany).
		POST("/sync/changes", h.Changes.Notify).
		GET("/links/:kind/:crm_system", h.Sync.ListLinks)

	admin := NewDomainGroup("crm-admin", "/admin/tenants/:tenant_id/crm").
		Use(nonNil(guards.Auth, guards.Admin)...)
	admin.POST("/credentials", h.Admin.UpsertCredentials).
		GET("/:crm_system", h.Admin.GetCredentials).
		DELETE("/:crm_system", h.Admin.DisableCredentials)

	return []RouteRegistrar{webhooks, tenant, admin}
}

func nonNil(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
