package routes

import (
	"os"
	"strings"

	"metacrm-backend/config"
	"metacrm-backend/controllers"
	"metacrm-backend/services"
	"metacrm-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	store := services.NewGormStore(config.DB)
	followUps := controllers.NewFollowUpController(
		services.NewFollowUpService(store),
		services.NewNotifierService(store, store),
	)

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.PUT("/set-password", controllers.SetPassword)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)

			clients.GET("/:id/notes", controllers.GetClientNotes)
			clients.POST("/:id/notes", controllers.CreateClientNote)
			clients.GET("/:id/sales", controllers.GetClientSales)
			clients.POST("/:id/sales", controllers.CreateClientSale)
		}

		// Service routes
		srv := api.Group("/services")
		{
			srv.GET("", controllers.GetServices)
			srv.GET("/:id", controllers.GetService)

			srv.POST("", utils.AdminOnly(), controllers.CreateService)
			srv.PUT("/:id", utils.AdminOnly(), controllers.UpdateService)
			srv.DELETE("/:id", utils.AdminOnly(), controllers.DeleteService)
		}

		// Follow-up routes
		fu := api.Group("/follow-ups")
		{
			fu.GET("", followUps.ListFollowUps)
			fu.POST("", followUps.CreateFollowUp)
			fu.GET("/due", followUps.GetDueFollowUps)
			fu.PUT("/:id/complete", followUps.CompleteFollowUp)
			fu.PUT("/:id/reschedule", followUps.RescheduleFollowUp)
			fu.DELETE("/:id", followUps.DeleteFollowUp)
			fu.POST("/:id/acknowledge", followUps.AcknowledgeFollowUp)
			fu.POST("/:id/remind", followUps.SendReminder)
		}

		// Notification routes
		api.GET("/notifications", controllers.GetNotifications)

		// Analytics routes
		api.GET("/analytics", controllers.GetAnalytics)

		// User management (admin)
		users := api.Group("/users", utils.AdminOnly())
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.POST("/:id/invite", controllers.ResendInvite)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}
	}

	return r
}
