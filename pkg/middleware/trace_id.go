package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

type CtxKey string

// CtxKeyTraceID is the context key the logger's JSON handler reads to attach
// the trace ID to every record emitted while serving a relay request.
const CtxKeyTraceID CtxKey = "trace_id"

// TraceID tags each inbound request with a fresh ksuid so a lookup can be
// followed from the relay's access log through the outbound upstream calls.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), CtxKeyTraceID, ksuid.New().String())
		c.Request = c.Request.Clone(ctx)

		c.Next()
	}
}
