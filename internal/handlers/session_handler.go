package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-session-service/internal/apperror"
	"checkout-session-service/internal/models"
	"checkout-session-service/internal/service"
)

// SessionHandler exposes checkout session creation to HTTP clients.
type SessionHandler struct {
	checkout *service.CheckoutService
}

// NewSessionHandler constructs a handler instance.
func NewSessionHandler(checkout *service.CheckoutService) *SessionHandler {
	return &SessionHandler{checkout: checkout}
}

// CreateSession validates the cart and returns the provider's session payload.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		apperror.Respond(c, apperror.Wrap(apperror.KindValidation, http.StatusBadRequest, models.MsgInvalidBody, err))
		return
	}

	body, err := models.DecodeBody(data)
	if err != nil {
		apperror.Respond(c, apperror.Wrap(apperror.KindValidation, http.StatusBadRequest, models.MsgInvalidBody, err))
		return
	}

	req, err := models.ValidateSessionRequest(body)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	session, err := h.checkout.CreateSession(c.Request.Context(), *req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Status: apperror.StatusSuccess,
		Data:   session,
	})
}
