package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordedStatus struct {
	route  string
	status int
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedStatus
}

func (f *fakeRecorder) IncHTTPStatus(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recordedStatus{route: route, status: status})
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	router := gin.New()
	router.Use(HTTPMetrics(rec))
	router.GET("/tenants/:tenant_id/crm/hubspot", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tenants/abc/crm/hubspot", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []recordedStatus{
		{route: "/tenants/:tenant_id/crm/hubspot", status: http.StatusNotFound},
		{route: unmatchedRoute, status: http.StatusNotFound},
	}, rec.seen)
}

func TestHTTPMetrics_NilRecorder(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
