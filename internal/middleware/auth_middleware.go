package middleware

import (
	"github.com/gin-gonic/gin"

	"checkout-session-service/internal/apperror"
	"checkout-session-service/internal/service"
)

// SecretKeyMiddleware rejects requests whose header does not carry the shared
// secret. Rejected requests never reach the handler.
func SecretKeyMiddleware(auth *service.AuthService, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsValidRequest(c.GetHeader(header)) {
			apperror.Respond(c, apperror.PermissionDenied())
			return
		}
		c.Next()
	}
}
