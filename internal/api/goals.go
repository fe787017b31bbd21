package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.GET("/active", h.ActiveGoal)
	}
}

// CreateGoal activates the submitted goal, atomically replacing whichever
// goal was active before.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	var req types.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal := &models.Goal{
		GoalType:         models.GoalType(req.GoalType),
		TargetWeightKg:   req.TargetWeightKg,
		TargetBodyFatPct: req.TargetBodyFatPct,
		TargetDate:       req.TargetDate,
		DailyCalories:    req.DailyCalories,
		DailyProteinG:    req.DailyProteinG,
	}

	stored, err := h.goals.ReplaceActiveGoal(c.Request.Context(), userID, goal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	goals, err := h.goals.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) ActiveGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	goal, err := h.goals.ActiveGoal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
