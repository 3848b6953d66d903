package router

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leadlane/backend/docs"
)

var ginParam = regexp.MustCompile(`:([A-Za-z_]+)`)

func TestCRMRoutes_DocumentedInSwagger(t *testing.T) {
	engine := newCRMEngine(CRMGuards{})
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	w := serve(engine, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath            string                                `json:"basePath"`
		Paths               map[string]map[string]json.RawMessage `json:"paths"`
		SecurityDefinitions map[string]json.RawMessage            `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.SecurityDefinitions, "BearerAuth")

	documented := 0
	for _, route := range engine.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		path := ginParam.ReplaceAllString(strings.TrimPrefix(route.Path, "/api/v1"), "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "path %s is not documented", path) {
			assert.Contains(t, ops, strings.ToLower(route.Method), "%s %s", route.Method, path)
		}
		documented++
	}
	assert.Equal(t, 16, documented)
}

func TestSwaggerUI_Served(t *testing.T) {
	engine := gin.New()
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	w := serve(engine, http.MethodGet, "/swagger/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger")
}
