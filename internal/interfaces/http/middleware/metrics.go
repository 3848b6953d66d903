// Package middleware provides HTTP middleware for the LeadLane API.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// StatusRecorder counts responses per route and status
type StatusRecorder interface {
	IncHTTPStatus(route string, status int)
}

// unmatchedRoute labels requests that hit no registered route
const unmatchedRoute = "unmatched"

// HTTPMetrics records the response status of every request under its route pattern.
// The pattern keeps label cardinality bounded.
func HTTPMetrics(recorder StatusRecorder) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.IncHTTPStatus(route, c.Writer.Status())
	}
}
