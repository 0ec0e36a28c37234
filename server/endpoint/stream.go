package endpoint

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/eval"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/server/middleware"
	"github.com/kbukum/infiniter/sse"
)

// Stream sends the generator named in the path as Server-Sent Events. It takes
// the same parameters as Sequence, but infinite queries are allowed: they
// run until the client disconnects or the request timeout ends them. Errors
// found before the first value are answered with the JSON error envelope.
func Stream(ev *eval.Evaluator, serviceName string, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q eval.Query
		if err := c.ShouldBindQuery(&q); err != nil {
			RespondWithError(c, apperrors.InvalidInput("query", err.Error()))
			return
		}
		q.Generator = c.Param("name")

		oc := observability.NewOperationContext(serviceName, "stream", q.Generator, c.GetString(middleware.RequestIDKey), metrics)
		ctx, span := oc.Start(c.Request.Context(), observability.SpanStream)

		s, err := ev.Open(ctx, q)
		if err != nil {
			oc.End(ctx, span, 0, err)
			RespondWithError(c, err)
			return
		}
		w, err := sse.NewWriter(c.Writer)
		if err != nil {
			_ = s.Close()
			oc.End(ctx, span, 0, err)
			RespondWithError(c, err)
			return
		}

		n, err := sse.Stream(ctx, w, q.Generator, s)
		oc.End(ctx, span, n, err)
	}
}
