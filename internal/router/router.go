package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"craftmarket/internal/config"
	"craftmarket/internal/handler"
	"craftmarket/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = validation.NewEchoValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Disk-stored uploads are served directly; the S3 backend returns
	// absolute object URLs instead.
	if cfg.S3Bucket == "" {
		e.Static("/uploads", cfg.UploadsDir)
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:id", productHandler.GetProduct)

	// Secured routes (require a live session token)
	secured := api.Group("", guard)

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)
	secured.POST("/auth/become-master", authHandler.BecomeMaster)

	secured.POST("/products", productHandler.CreateProduct)
	secured.PUT("/products/:id", productHandler.UpdateProduct)
	secured.DELETE("/products/:id", productHandler.DeleteProduct)

	secured.POST("/orders", orderHandler.CreateOrder)
	secured.GET("/orders/my", orderHandler.MyOrders)
	secured.GET("/orders/:id", orderHandler.GetOrder)
	secured.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
}
