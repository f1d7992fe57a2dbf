package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const sessionCtxKey ctxKey = "sessionID"

// sessionMiddleware canonicalizes the :sessionId path parameter and stores it in
// the request context.
func sessionMiddleware(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("sessionId")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "session id required"})
			return
		}
		id, err := sessions.Normalize(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionCtxKey).(string)
	return id
}
