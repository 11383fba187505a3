package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context values. Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey = contextKey("logger")
	actorKey  = contextKey("actorID")
)

// ActorHeader names the caller recorded in audit fields. Identity is asserted by
// an upstream gateway; the ledger does not authenticate it.
const ActorHeader = "X-Actor-ID"

// SystemActor is recorded when no actor header is present.
const SystemActor = "system"

// ActorMiddleware stores the caller id from ActorHeader in the request context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			actor = SystemActor
		}
		c.Set(string(actorKey), actor)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), actorKey, actor))
		c.Next()
	}
}

// GetActorFromContext retrieves the caller id from the Gin context, falling
// back to the request context and then to SystemActor.
func GetActorFromContext(c *gin.Context) string {
	if v, exists := c.Get(string(actorKey)); exists {
		if actor, ok := v.(string); ok && actor != "" {
			return actor
		}
	}
	if actor, ok := c.Request.Context().Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}
