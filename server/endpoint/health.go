package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/infiniter/observability"
)

// Health reports service health folded from every checker. A down component
// answers 503.
func Health(serviceName, serviceVersion string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.Check(c.Request.Context(), serviceName, serviceVersion, checkers...)
		c.JSON(statusFor(sh.Status), sh)
	}
}

// Readiness answers whether the service can take traffic. Degraded components
// still count as ready.
func Readiness(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.Check(c.Request.Context(), serviceName, "", checkers...)
		status := "ready"
		if sh.Status == observability.HealthStatusDown {
			status = "not_ready"
		}
		c.JSON(statusFor(sh.Status), gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func statusFor(s observability.HealthStatus) int {
	if s == observability.HealthStatusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
