package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"learntechnotes-backend/internal/handler"
	"learntechnotes-backend/internal/service"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	catalogHandler  *handler.CatalogHandler
}

func NewServer(checkoutService service.CheckoutService, catalogService service.CatalogService) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	s := &Server{
		echo:            e,
		checkoutHandler: checkoutHandler,
		catalogHandler:  catalogHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	s.echo.GET("/courses", s.catalogHandler.GetCourses)

	// route paths match the storefront scripts, so no /api prefix here
	s.echo.POST("/create-order", s.checkoutHandler.CreateOrder)
	s.echo.POST("/verify-payment", s.checkoutHandler.VerifyPayment)
	s.echo.GET("/download/:token", s.checkoutHandler.Download)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
