package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

type MenuItemHandler struct {
	menuItems *service.MenuItemService
}

func NewMenuItemHandler(menuItems *service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{menuItems: menuItems}
}

func (h *MenuItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/menu-items")
	{
		items.GET("/search", h.Search)
		items.POST("/:id/quick-add", h.QuickAdd)
	}
}

func (h *MenuItemHandler) Search(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.menuItems.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// QuickAdd logs the menu item as a meal for the user.
func (h *MenuItemHandler) QuickAdd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req types.QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal, err := h.menuItems.QuickAdd(c.Request.Context(), userID, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}
