package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires the handlers against an in-memory database, with an auth stub
// that injects the given user into the request context.
type testEnv struct {
	db         *gorm.DB
	router     *gin.Engine
	userID     uuid.UUID
	auth       *service.AuthService
	goals      *service.GoalService
	biometrics *service.BiometricService
	targets    *service.TargetService
	meals      *service.MealService
	menuItems  *service.MenuItemService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Biometric{},
		&models.Goal{},
		&models.DailyTarget{},
		&models.Meal{},
		&models.MealItem{},
		&models.MenuItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	env := &testEnv{db: db, userID: uuid.New()}
	env.auth = service.NewAuthService(db, "test-secret")
	env.goals = service.NewGoalService(db)
	env.biometrics = service.NewBiometricService(db)
	env.targets = service.NewTargetService(db, nil, env.goals, env.biometrics)
	env.meals = service.NewMealService(db, env.targets)
	env.menuItems = service.NewMenuItemService(db, env.meals)

	user := models.User{ID: env.userID, Name: "Test User", Email: "test@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	profile := models.UserProfile{
		UserID: env.userID, Username: "tester",
		Age: 30, Sex: "male", ActivityLevel: "moderate",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	NewAuthHandler(env.auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", env.userID)
		c.Next()
	})
	NewProfileHandler(service.NewProfileService(db)).RegisterRoutes(protected)
	NewBiometricHandler(env.biometrics).RegisterRoutes(protected)
	NewGoalHandler(env.goals).RegisterRoutes(protected)
	NewTargetHandler(env.targets).RegisterRoutes(protected)
	NewMealHandler(env.meals, nil).RegisterRoutes(protected)
	NewMenuItemHandler(env.menuItems).RegisterRoutes(protected)
	NewAssistantHandler(nil).RegisterRoutes(protected, nil)

	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
