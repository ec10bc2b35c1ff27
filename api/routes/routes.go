package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/handlers"
	"github.com/studybridge/crm-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router mounts
type HandlerDependencies struct {
	AuthHandler      *handlers.AuthHandler
	PartnerHandler   *handlers.PartnerHandler
	LeadHandler      *handlers.LeadHandler
	CategoryHandler  *handlers.CategoryHandler
	DashboardHandler *handlers.DashboardHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		partners := protected.Group("/partners")
		{
			partners.GET("", deps.PartnerHandler.ListPartners)
			partners.POST("", deps.PartnerHandler.CreatePartner)
			partners.GET("/:id", deps.PartnerHandler.GetPartner)
			partners.PUT("/:id", deps.PartnerHandler.UpdatePartner)
			partners.PATCH("/:id/status", deps.PartnerHandler.UpdatePartnerStatus)
			partners.DELETE("/:id", deps.PartnerHandler.DeletePartner)
			partners.GET("/:id/statistics", deps.PartnerHandler.GetPartnerStatistics)
		}

		leads := protected.Group("/leads")
		{
			leads.GET("", deps.LeadHandler.ListLeads)
			leads.POST("", deps.LeadHandler.CreateLead)
			leads.GET("/:id", deps.LeadHandler.GetLead)
			leads.PUT("/:id", deps.LeadHandler.UpdateLead)
			leads.DELETE("/:id", deps.LeadHandler.DeleteLead)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", deps.CategoryHandler.ListCategories)
			categories.POST("", deps.CategoryHandler.CreateCategory)
			categories.PUT("", deps.CategoryHandler.UpdateCategory)
			categories.DELETE("", deps.CategoryHandler.DeleteCategory)
		}

		protected.GET("/dashboard/stats", deps.DashboardHandler.GetStats)
	}

	return router
}
