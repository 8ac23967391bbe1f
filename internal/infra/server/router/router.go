// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/trip-logbook/backend/internal/integration/entrypoint/controller"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	userController    *controller.UserController
	carController     *controller.CarController
	tripController    *controller.TripController
	refuelController  *controller.RefuelController
	expenseController *controller.ExpenseController
	tagController     *controller.TagController
	statsController   *controller.StatsController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	carController *controller.CarController,
	tripController *controller.TripController,
	refuelController *controller.RefuelController,
	expenseController *controller.ExpenseController,
	tagController *controller.TagController,
	statsController *controller.StatsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		userController:    userController,
		carController:     carController,
		tripController:    tripController,
		refuelController:  refuelController,
		expenseController: expenseController,
		tagController:     tagController,
		statsController:   statsController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/api/v1/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	// Everything below requires authentication
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.userController != nil {
		users := protected.Group("/users")
		{
			users.GET("/me", r.userController.GetProfile)
			users.PATCH("/me", r.userController.UpdateProfile)
			users.PUT("/:id/roles", r.userController.AssignRoles)
		}
	}

	if r.carController != nil {
		cars := protected.Group("/cars")
		{
			cars.GET("", r.carController.List)
			cars.POST("", r.carController.Create)
			cars.GET("/:id", r.carController.Get)
			cars.PATCH("/:id", r.carController.Update)
			cars.DELETE("/:id", r.carController.Delete)

			if r.tripController != nil {
				cars.GET("/:id/trips", r.tripController.ListByCar)
			}
			if r.statsController != nil {
				cars.GET("/:id/stats", r.statsController.CarStats)
				cars.GET("/:id/monthly-stats", r.statsController.MonthlyStats)
				cars.POST("/:id/monthly-stats/recompute", r.statsController.RequestRecompute)
			}
		}
	}

	if r.tripController != nil {
		trips := protected.Group("/trips")
		{
			trips.GET("", r.tripController.List)
			trips.POST("", r.tripController.Create)
			trips.GET("/:id", r.tripController.Get)
			trips.PATCH("/:id", r.tripController.Update)
			trips.DELETE("/:id", r.tripController.Delete)
		}
	}

	if r.refuelController != nil {
		refuels := protected.Group("/refuels")
		{
			refuels.GET("", r.refuelController.List)
			refuels.POST("", r.refuelController.Create)
			refuels.GET("/:id", r.refuelController.Get)
			refuels.PATCH("/:id", r.refuelController.Update)
			refuels.DELETE("/:id", r.refuelController.Delete)
		}
	}

	if r.expenseController != nil {
		expenses := protected.Group("/expenses")
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PATCH("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}
	}

	if r.tagController != nil {
		tags := protected.Group("/tags")
		{
			tags.GET("", r.tagController.List)
			tags.POST("", r.tagController.Create)
			tags.PATCH("/:id", r.tagController.Update)
			tags.DELETE("/:id", r.tagController.Delete)
		}
	}

	if r.statsController != nil {
		protected.GET("/stats/monthly-report", r.statsController.MonthlyReport)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
