package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/resilience"
)

// Concurrency runs the rest of the chain inside a slot of b. Requests that
// get no slot are answered with the SERVICE_BUSY envelope.
func Concurrency(b *resilience.Bulkhead) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := b.Execute(c.Request.Context(), func(context.Context) error {
			c.Next()
			return nil
		})
		if err != nil {
			appErr := apperrors.Wrap(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		}
	}
}
