package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"stay-calendar/internal/domain/user"
	"stay-calendar/internal/handler/api"
	"stay-calendar/internal/handler/middleware"
	"stay-calendar/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine          *gin.Engine
	Config          config.Config
	Logger          *middleware.Logger
	PropertyHandler *api.PropertyHandler
	BookingHandler  *api.BookingHandler
	ActionHandler   *api.ActionHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	auth := p.AuthMiddleware
	hostRoles := auth.RequireRole(user.RoleHost, user.RoleAgent, user.RoleAdmin)

	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		properties := apiGroup.Group("/properties")
		{
			addRoutes(properties, []route{
				{Method: http.MethodGet, Path: "/search", Handler: p.PropertyHandler.Search},
				{Method: http.MethodGet, Path: "/:id", Handler: p.PropertyHandler.Get},
				{Method: http.MethodGet, Path: "/:id/quote", Handler: p.PropertyHandler.Quote},
				{Method: http.MethodGet, Path: "/:id/calendar.ics", Handler: p.PropertyHandler.CalendarICS},
				{Method: http.MethodGet, Path: "/:id/calendar", Handler: p.PropertyHandler.Calendar, Mw: []gin.HandlerFunc{auth.OptionalAuth()}},
			})

			hostOnly := properties.Group("")
			hostOnly.Use(auth.RequireAuth(), hostRoles)
			addRoutes(hostOnly, []route{
				{Method: http.MethodPost, Path: "", Handler: p.PropertyHandler.Create},
				{Method: http.MethodPatch, Path: "/:id/calendar", Handler: p.PropertyHandler.BulkEdit},
				{Method: http.MethodPost, Path: "/:id/calendar/prune", Handler: p.PropertyHandler.Prune},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: p.PropertyHandler.ListBookings},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: p.BookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: p.BookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.BookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.BookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: p.BookingHandler.Approve, Mw: []gin.HandlerFunc{hostRoles}},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: p.BookingHandler.Decline, Mw: []gin.HandlerFunc{hostRoles}},
			})
		}

		actions := apiGroup.Group("/actions")
		actions.Use(auth.RequireAuth(), hostRoles, p.RateLimiter.Middleware())
		{
			addRoutes(actions, []route{
				{Method: http.MethodPost, Path: "", Handler: p.ActionHandler.Dispatch},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
