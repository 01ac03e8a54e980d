package apperror

import (
	"github.com/gin-gonic/gin"

	"checkout-session-service/pkg/logger"
)

// Respond translates err, logs it with the request fields and aborts the gin
// context with the failure body.
func Respond(c *gin.Context, err error) {
	resp := Process(err)

	fields := map[string]interface{}{
		"kind":   string(KindOf(err)),
		"status": resp.StatusCode,
		"path":   c.Request.URL.Path,
	}
	log := logger.FromContext(c.Request.Context())
	if resp.StatusCode >= 500 {
		log.WithError(err).WithFields(fields).Error(resp.Message)
	} else {
		log.WithFields(fields).Warn(resp.Message)
	}

	c.AbortWithStatusJSON(resp.StatusCode, resp)
}
