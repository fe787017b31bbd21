package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

type TargetHandler struct {
	targets *service.TargetService
}

func NewTargetHandler(targets *service.TargetService) *TargetHandler {
	return &TargetHandler{targets: targets}
}

func (h *TargetHandler) RegisterRoutes(router *gin.RouterGroup) {
	targets := router.Group("/targets")
	{
		targets.POST("/propose", h.Propose)
		targets.POST("/accept", h.Accept)
		targets.GET("/today", h.Today)
	}
}

// parseDate interprets an optional YYYY-MM-DD request date, defaulting to
// today.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Propose derives a fresh recommendation and stores it as the pending
// proposal for the date. The response carries the recommendation, reasoning
// included, so the UI can show the user why before they accept.
func (h *TargetHandler) Propose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	var req types.ProposeTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	target, rec, err := h.targets.ProposeForDate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"target": target, "recommendation": rec})
}

func (h *TargetHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	var req types.AcceptTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	target, err := h.targets.AcceptTarget(c.Request.Context(), userID, date.Format("2006-01-02"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *TargetHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	target, err := h.targets.GetTodaysTarget(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}
