package server

import (
	"context"
	"itemtracker/internal/handler"
	authmw "itemtracker/internal/middleware"
	"itemtracker/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo          *echo.Echo
	itemHandler   *handler.ItemHandler
	lookupHandler *handler.LookupHandler
	userHandler   *handler.UserHandler
	auth          echo.MiddlewareFunc
}

func NewServer(
	itemService service.ItemService,
	lookupService service.LookupService,
	userService service.UserService,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:          e,
		itemHandler:   handler.NewItemHandler(itemService),
		lookupHandler: handler.NewLookupHandler(lookupService),
		userHandler:   handler.NewUserHandler(userService),
		auth:          authmw.AuthMiddleware(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.userHandler.Register)
	auth.POST("/login", s.userHandler.Login)
	auth.GET("/me", s.userHandler.Me, s.auth)

	// -------- items --------
	items := api.Group("/items", s.auth)
	items.GET("", s.itemHandler.Board)
	items.GET("/export.csv", s.itemHandler.Export)
	items.GET("/:id", s.itemHandler.Get)
	items.POST("", s.itemHandler.Create)
	items.PATCH("/:id", s.itemHandler.Update)
	items.DELETE("/:id", s.itemHandler.Delete)

	// -------- lookups --------
	lookups := api.Group("/lookups", s.auth)
	lookups.GET("", s.lookupHandler.Options)
	lookups.GET("/:kind", s.lookupHandler.List)
	lookups.POST("/:kind", s.lookupHandler.Create)
	lookups.DELETE("/:kind/:id", s.lookupHandler.Delete)
}

// Handler exposes the router for in-process use.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
