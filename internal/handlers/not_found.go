package handlers

import (
	"github.com/gin-gonic/gin"

	"checkout-session-service/internal/apperror"
)

// NotFound answers every request that matched no route.
func NotFound(c *gin.Context) {
	apperror.Respond(c, apperror.NotFound())
}
