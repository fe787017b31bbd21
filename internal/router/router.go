package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AlchemistChaos/nt-2-sub001/internal/api"
	"github.com/AlchemistChaos/nt-2-sub001/internal/middleware"
)

// Handlers collects the API handlers wired into the router.
type Handlers struct {
	Auth       *api.AuthHandler
	Profile    *api.ProfileHandler
	Biometrics *api.BiometricHandler
	Goals      *api.GoalHandler
	Targets    *api.TargetHandler
	Meals      *api.MealHandler
	MenuItems  *api.MenuItemHandler
	Assistant  *api.AssistantHandler
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers, tokens middleware.TokenValidator, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		h.Profile.RegisterRoutes(protected)
		h.Biometrics.RegisterRoutes(protected)
		h.Goals.RegisterRoutes(protected)
		h.Targets.RegisterRoutes(protected)
		h.Meals.RegisterRoutes(protected)
		h.MenuItems.RegisterRoutes(protected)

		var limit gin.HandlerFunc
		if limiter != nil {
			limit = limiter.RateLimitMiddleware()
		}
		h.Assistant.RegisterRoutes(protected, limit)
	}

	return router
}
