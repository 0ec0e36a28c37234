package endpoint

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/eval"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/server/middleware"
)

// Sequence evaluates the generator named in the path. Query parameters map
// onto eval.Query; repeat items for cycle (items=1&items=2). Each evaluation
// runs in its own span and is recorded in metrics when given.
func Sequence(ev *eval.Evaluator, serviceName string, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q eval.Query
		if err := c.ShouldBindQuery(&q); err != nil {
			RespondWithError(c, apperrors.InvalidInput("query", err.Error()))
			return
		}
		q.Generator = c.Param("name")

		oc := observability.NewOperationContext(serviceName, "evaluate", q.Generator, c.GetString(middleware.RequestIDKey), metrics)
		ctx, span := oc.Start(c.Request.Context(), observability.SpanEvaluate)

		res, err := ev.Evaluate(ctx, q)
		values := 0
		if res != nil {
			values = res.Count
		}
		oc.End(ctx, span, values, err)

		if err != nil {
			RespondWithError(c, err)
			return
		}
		RespondOK(c, res)
	}
}
