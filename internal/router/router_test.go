package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlchemistChaos/nt-2-sub001/internal/api"
	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

func setupRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Biometric{},
		&models.Goal{},
		&models.DailyTarget{},
		&models.Meal{},
		&models.MealItem{},
		&models.MenuItem{},
	))

	authService := service.NewAuthService(db, "test-secret")
	goalService := service.NewGoalService(db)
	biometricService := service.NewBiometricService(db)
	targetService := service.NewTargetService(db, nil, goalService, biometricService)
	mealService := service.NewMealService(db, targetService)
	menuItemService := service.NewMenuItemService(db, mealService)

	handlers := Handlers{
		Auth:       api.NewAuthHandler(authService),
		Profile:    api.NewProfileHandler(service.NewProfileService(db)),
		Biometrics: api.NewBiometricHandler(biometricService),
		Goals:      api.NewGoalHandler(goalService),
		Targets:    api.NewTargetHandler(targetService),
		Meals:      api.NewMealHandler(mealService, nil),
		MenuItems:  api.NewMenuItemHandler(menuItemService),
		Assistant:  api.NewAssistantHandler(nil),
	}

	return SetupRouter(handlers, authService, nil), authService
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/goals",
		"/api/v1/targets/today",
		"/api/v1/meals",
		"/api/v1/menu-items/search",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestTokenGrantsAccess(t *testing.T) {
	router, authService := setupRouter(t)

	token, err := authService.Register(context.Background(), &types.RegisterRequest{
		Name:     "Routed User",
		Email:    "routed@example.com",
		Password: "supersecret",
		Username: "routed",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "routed")
}
