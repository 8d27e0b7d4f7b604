package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/api/handlers"
	"github.com/nimbusgrid/platform-go/internal/api/middleware"
	"github.com/nimbusgrid/platform-go/internal/application"
)

// SetupRouter wires the full API surface behind JWT auth.
func SetupRouter(services *application.Services) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	h := handlers.New(services)

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/projects", h.Project.GetProjects)
		api.POST("/projects", h.Project.CreateProject)
		api.PUT("/projects", h.Project.UpdateProject)
		api.DELETE("/projects", h.Project.DeleteProject)

		api.GET("/jobs", h.Job.GetJobs)
		api.POST("/jobs", h.Job.CreateJob)
		api.PUT("/jobs", h.Job.UpdateJob)
		api.DELETE("/jobs", h.Job.DeleteJob)

		api.GET("/monitoring", h.Monitoring.GetMonitoring)
		api.POST("/monitoring", h.Monitoring.InsertMonitoring)

		api.GET("/pricing", h.Pricing.GetPricing)

		user := api.Group("/user")
		{
			user.GET("/profile", h.User.GetProfile)
			user.PUT("/profile", h.User.UpdateProfile)
			user.PUT("/preferences", h.User.UpdatePreferences)
			user.POST("/api-keys", h.User.CreateAPIKey)
			user.DELETE("/api-keys", h.User.DeleteAPIKey)
			user.POST("/payment-methods", h.User.AddPaymentMethod)
			user.DELETE("/payment-methods", h.User.DeletePaymentMethod)
			user.POST("/purchase-credits", h.User.PurchaseCredits)
		}
	}

	return r
}
