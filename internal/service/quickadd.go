package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

// MenuItemService backs the quick-add library of branded menu items.
type MenuItemService struct {
	db    *gorm.DB
	meals *MealService
}

func NewMenuItemService(db *gorm.DB, meals *MealService) *MenuItemService {
	return &MenuItemService{db: db, meals: meals}
}

// CreateMenuItem stores a branded item with its name embedding.
func (s *MenuItemService) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.Name == "" || item.Brand == "" {
		return nil, fmt.Errorf("brand and name are required")
	}
	item.Embedding = GenerateEmbedding(item.Brand + " " + item.Name)
	if err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Create(item).Error
	}); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return item, nil
}

// Search finds menu items by keyword, ranked by embedding similarity on
// postgres; other dialects fall back to plain keyword matching.
func (s *MenuItemService) Search(ctx context.Context, query string, limit int) ([]models.MenuItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	dbQuery := s.db.WithContext(ctx)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			subQuery := s.db.Model(&models.MenuItem{}).
				Select("id, embedding <-> ? as similarity", vec).
				Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
			dbQuery = dbQuery.Joins("JOIN (?) as search ON menu_items.id = search.id", subQuery).
				Order("search.similarity ASC")
		} else {
			dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like).
				Order("brand, name")
		}
	}

	var items []models.MenuItem
	if err := dbQuery.Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}
	return items, nil
}

// QuickAdd logs a menu item as a one-item meal for the user, scaled by the
// requested serving count.
func (s *MenuItemService) QuickAdd(ctx context.Context, userID, itemID uuid.UUID, req *types.QuickAddRequest) (*models.Meal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var item models.MenuItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load menu item: %w", err)
	}

	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}
	ateAt := time.Now()
	if req.AteAt != nil {
		ateAt = *req.AteAt
	}

	meal := &models.Meal{
		MealType: req.MealType,
		AteAt:    ateAt,
		Items: []models.MealItem{{
			FoodLabel: item.Brand + " " + item.Name,
			Quantity:  servings,
			Unit:      "serving",
			Calories:  item.Calories * servings,
			ProteinG:  item.ProteinG * servings,
			CarbsG:    item.CarbsG * servings,
			FatG:      item.FatG * servings,
		}},
	}
	return s.meals.LogMeal(ctx, userID, meal)
}
