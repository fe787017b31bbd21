package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

type BiometricHandler struct {
	biometrics *service.BiometricService
}

func NewBiometricHandler(biometrics *service.BiometricService) *BiometricHandler {
	return &BiometricHandler{biometrics: biometrics}
}

func (h *BiometricHandler) RegisterRoutes(router *gin.RouterGroup) {
	biometrics := router.Group("/biometrics")
	{
		biometrics.POST("", h.Record)
		biometrics.GET("", h.History)
	}
}

func (h *BiometricHandler) Record(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	var req types.RecordBiometricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b := &models.Biometric{
		WeightKg:   req.WeightKg,
		HeightCm:   req.HeightCm,
		BodyFatPct: req.BodyFatPct,
	}
	if req.RecordedAt != nil {
		b.RecordedAt = *req.RecordedAt
	}

	stored, err := h.biometrics.Record(c.Request.Context(), userID, b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *BiometricHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	history, err := h.biometrics.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
