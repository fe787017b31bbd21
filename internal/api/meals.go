package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

const maxPhotoBytes = 10 << 20 // 10 MiB

type MealHandler struct {
	meals  *service.MealService
	photos *service.PhotoService
}

func NewMealHandler(meals *service.MealService, photos *service.PhotoService) *MealHandler {
	return &MealHandler{meals: meals, photos: photos}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("", h.LogMeal)
		meals.GET("", h.ListMeals)
		meals.GET("/progress", h.Progress)
		meals.POST("/:id/photo", h.UploadPhoto)
	}
}

func (h *MealHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal := &models.Meal{
		MealType: req.MealType,
		Notes:    req.Notes,
	}
	if req.AteAt != nil {
		meal.AteAt = *req.AteAt
	}
	for _, it := range req.Items {
		meal.Items = append(meal.Items, models.MealItem{
			FoodLabel: it.FoodLabel,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Calories:  it.Calories,
			ProteinG:  it.ProteinG,
			CarbsG:    it.CarbsG,
			FatG:      it.FatG,
		})
	}

	stored, err := h.meals.LogMeal(c.Request.Context(), userID, meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	meals, err := h.meals.ListByDate(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) Progress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	progress, err := h.meals.Progress(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// UploadPhoto stores the uploaded image in S3 and attaches its URL to the
// meal.
func (h *MealHandler) UploadPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}
	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}
	if len(data) > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds 10MB"})
		return
	}

	url, err := h.photos.UploadMealPhoto(c.Request.Context(), userID, data, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.meals.AttachPhoto(c.Request.Context(), userID, mealID, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
