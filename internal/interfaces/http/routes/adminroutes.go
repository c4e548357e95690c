package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/interfaces/http/handlers"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	AccountHandler       *handlers.AccountAdminHandler
	TicketHandler        *handlers.TicketAdminHandler
	MaintenanceHandler   *handlers.MaintenanceHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAdminRoutes(engine *gin.Engine, config *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAuth(), config.PermissionMiddleware.RequirePolicy())

	accounts := admin.Group("/accounts")
	{
		// static paths before /:id
		accounts.GET("/unverified/stats", config.AccountHandler.GetStats)
		accounts.GET("/unverified", config.AccountHandler.ListUnverified)
		accounts.POST("/unverified/cleanup", config.AccountHandler.Cleanup)
		accounts.POST("/unverified/reminders", config.AccountHandler.SendReminders)
		accounts.DELETE("/:id", config.AccountHandler.DeleteAccount)
	}

	tickets := admin.Group("/tickets")
	{
		tickets.GET("/autoclose-candidates", config.TicketHandler.ListCandidates)
		tickets.POST("/:id/autoclose", config.TicketHandler.AutoClose)
	}

	admin.POST("/jobs/:name/run", config.MaintenanceHandler.RunJob)
	admin.GET("/audit-logs", config.MaintenanceHandler.ListAuditLogs)
}
