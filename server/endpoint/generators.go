package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/infiniter/eval"
)

// Generators lists the registered generators with their finiteness.
func Generators(registry *eval.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := registry.List()
		RespondOKWithMeta(c, list, &Meta{Total: len(list)})
	}
}
