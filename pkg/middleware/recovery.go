package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mxwllalpha/kodepos-worker/pkg/alert"
)

func Recovery(n alert.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Re-panicking lets the notifier's recover log the callstack while
		// the request is still aborted with a 500.
		defer n.Recover(c.Request.Context())
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				panic(r)
			}
		}()

		c.Next()
	}
}
