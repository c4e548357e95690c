package http

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/infrastructure/ratelimit"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/handlers"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/middleware"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/routes"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Support      *handlers.SupportHandler
	Health       *handlers.HealthHandler
	AccountAdmin *handlers.AccountAdminHandler
	TicketAdmin  *handlers.TicketAdminHandler
	Maintenance  *handlers.MaintenanceHandler
}

// Middlewares groups the request guards shared across route groups.
type Middlewares struct {
	Auth          *middleware.AuthMiddleware
	Permission    *middleware.PermissionMiddleware
	RateLimit     *middleware.RateLimitMiddleware
	AuthLimits    ratelimit.Limits
	SupportLimits ratelimit.Limits
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(mode string, h Handlers, mw Middlewares, log logger.Interface) *Router {
	if mode != "" {
		gin.SetMode(mode)
	}
	utils.RegisterValidators()

	engine := gin.New()
	engine.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	routes.SetupPublicRoutes(engine, &routes.PublicRouteConfig{
		AuthHandler:         h.Auth,
		SupportHandler:      h.Support,
		HealthHandler:       h.Health,
		AuthMiddleware:      mw.Auth,
		RateLimitMiddleware: mw.RateLimit,
		AuthLimits:          mw.AuthLimits,
		SupportLimits:       mw.SupportLimits,
	})
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		AccountHandler:       h.AccountAdmin,
		TicketHandler:        h.TicketAdmin,
		MaintenanceHandler:   h.Maintenance,
		AuthMiddleware:       mw.Auth,
		PermissionMiddleware: mw.Permission,
	})

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
