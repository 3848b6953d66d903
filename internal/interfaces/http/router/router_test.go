package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leadlane/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var hits int
	r.Use(func(c *gin.Context) {
		hits++
		c.Next()
	})
	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, 1, hits)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("crm", "/crm")
		assert.Equal(t, "crm", g.Name())
		assert.Equal(t, "/crm", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("test", "/test").
			GET("/items", ok).
			POST("/items", ok).
			PATCH("/items/:id", ok).
			DELETE("/items/:id", ok).
			Handle(http.MethodPut, "/items/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/test/items"},
			{http.MethodPost, "/api/v1/test/items"},
			{http.MethodPatch, "/api/v1/test/items/1"},
			{http.MethodDelete, "/api/v1/test/items/1"},
			{http.MethodPut, "/api/v1/test/items/1"},
		} {
			assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, tc.method)
		}
	})

	t.Run("middleware applies to subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("parent", "/parent").Use(func(c *gin.Context) {
			c.Header("X-Group", "parent")
			c.Next()
		})
		g.Group("child", "/child").GET("/leaf", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/parent/child/leaf")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "parent", w.Header().Get("X-Group"))
	})
}

func newCRMEngine(guards CRMGuards) *gin.Engine {
	engine := gin.New()
	h := CRMHandlers{
		Webhook:      handler.NewCRMWebhookHandler(nil, nil, 0),
		Connection:   handler.NewCRMConnectionHandler(nil),
		Admin:        handler.NewCRMAdminHandler(nil),
		FieldMapping: handler.NewCRMFieldMappingHandler(nil),
		Sync:         handler.NewCRMSyncHandler(nil),
		Changes:      handler.NewCRMChangeHandler(nil),
	}
	NewRouter(engine).Register(CRMRoutes(h, guards)...).Setup()
	return engine
}

func TestCRMRoutes_Registered(t *testing.T) {
	engine := newCRMEngine(CRMGuards{})

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/crm/webhooks/:crm_system",
		"POST /api/v1/tenants/:tenant_id/crm/hubspot/connect/initiate",
		"POST /api/v1/tenants/:tenant_id/crm/hubspot/oauth/callback",
		"GET /api/v1/tenants/:tenant_id/crm/hubspot",
		"DELETE /api/v1/tenants/:tenant_id/crm/hubspot",
		"GET /api/v1/tenants/:tenant_id/crm/connections",
		"GET /api/v1/tenants/:tenant_id/crm/field-mappings/:crm_system",
		"POST /api/v1/tenants/:tenant_id/crm/field-mappings/:crm_system",
		"PATCH /api/v1/tenants/:tenant_id/crm/field-mappings/:crm_system/:mapping_id",
		"DELETE /api/v1/tenants/:tenant_id/crm/field-mappings/:crm_system/:mapping_id",
		"POST /api/v1/tenants/:tenant_id/crm/sync/companies/:company_id",
		"POST /api/v1/tenants/:tenant_id/crm/sync/changes",
		"GET /api/v1/tenants/:tenant_id/crm/links/:kind/:crm_system",
		"POST /api/v1/admin/tenants/:tenant_id/crm/credentials",
		"GET /api/v1/admin/tenants/:tenant_id/crm/:crm_system",
		"DELETE /api/v1/admin/tenants/:tenant_id/crm/:crm_system",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestCRMRoutes_Guards(t *testing.T) {
	deny := func(status int) gin.HandlerFunc {
		return func(c *gin.Context) { c.AbortWithStatus(status) }
	}
	allow := func(c *gin.Context) { c.Next() }

	t.Run("tenant routes require auth", func(t *testing.T) {
		engine := newCRMEngine(CRMGuards{Auth: deny(http.StatusUnauthorized), TenantMatch: allow, Admin: allow})
		w := serve(engine, http.MethodGet, "/api/v1/tenants/acme/crm/connections")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tenant match runs after auth", func(t *testing.T) {
		engine := newCRMEngine(CRMGuards{Auth: allow, TenantMatch: deny(http.StatusForbidden), Admin: allow})
		w := serve(engine, http.MethodGet, "/api/v1/tenants/acme/crm/hubspot")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin routes require the admin guard", func(t *testing.T) {
		engine := newCRMEngine(CRMGuards{Auth: allow, TenantMatch: allow, Admin: deny(http.StatusForbidden)})
		w := serve(engine, http.MethodGet, "/api/v1/admin/tenants/acme/crm/hubspot")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("webhooks skip auth", func(t *testing.T) {
		engine := newCRMEngine(CRMGuards{Auth: deny(http.StatusUnauthorized), TenantMatch: allow, Admin: allow})
		w := serve(engine, http.MethodPost, "/api/v1/crm/webhooks/hubspot")
		require.NotEqual(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
