package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
)

// currentUserID pulls the authenticated user from the gin context. The auth
// middleware is responsible for setting it.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// respondError maps domain errors onto HTTP statuses. Validation problems
// carry their message; unexpected failures stay generic.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, nutrition.ErrInsufficientData),
		errors.Is(err, nutrition.ErrInvalidGoal),
		errors.Is(err, service.ErrUnrecognizedMeal):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflictRetryExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": "conflicting update, please retry"})
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
