package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/infrastructure/auth"
	"github.com/leadlane/backend/internal/infrastructure/config"
	"github.com/leadlane/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:    testSecret,
		Issuer:    "leadlane-test",
		AdminRole: "admin",
	})
}

func newTestToken(t *testing.T, svc *auth.JWTService, tenantID uuid.UUID, roles ...string) string {
	t.Helper()
	token, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   "user-1",
		Username: "ada",
		Roles:    roles,
	})
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, "user-1", GetJWTUserID(c))
		assert.Equal(t, tenantID.String(), GetJWTTenantID(c))
		assert.Equal(t, "ada", GetJWTUsername(c))
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/test", newTestToken(t, svc, tenantID))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService()
	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("missing header", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/test", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, rec).Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/test", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, decodeError(t, rec).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "leadlane-test",
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
				ExpiresAt: jwt.NewNumericDate(past),
			},
			TenantID: uuid.NewString(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := serve(router, http.MethodGet, "/test", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenExpired, decodeError(t, rec).Code)
	})
}

func TestJWTAuthMiddleware_SkipsWebhooksAndHealth(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/v1/crm/webhooks/:crm_system", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/crm/webhooks/hubspot", "").Code)
}

func TestRequireTenantMatch(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()
	token := newTestToken(t, svc, tenantID)

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/tenants/:tenant_id", RequireTenantMatch("tenant_id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/tenants/"+tenantID.String(), token).Code)

	rec := serve(router, http.MethodGet, "/tenants/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrCodeTenantMismatch, decodeError(t, rec).Code)

	rec = serve(router, http.MethodGet, "/tenants/not-a-uuid", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireTenantMatch_WithoutClaims(t *testing.T) {
	router := gin.New()
	router.GET("/tenants/:tenant_id", RequireTenantMatch("tenant_id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/tenants/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/admin", RequireAdmin(svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/admin", newTestToken(t, svc, tenantID, "admin")).Code)

	rec := serve(router, http.MethodGet, "/admin", newTestToken(t, svc, tenantID, "sales"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, rec).Code)
}
