package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/outfitshare/outfit-api/internal/api/handler"
	"github.com/outfitshare/outfit-api/internal/api/middleware"
	"github.com/outfitshare/outfit-api/internal/core/ports"

	_ "github.com/outfitshare/outfit-api/docs"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Users    ports.UserService
	Outfits  ports.OutfitService
	Comments ports.CommentService
	Images   ports.ImageSearcher
	Checks   []handler.DependencyCheck
}

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("outfitshare"))

	// --- Handlers ---
	users := handler.NewUserHandler(svc.Users)
	outfits := handler.NewOutfitHandler(svc.Outfits)
	comments := handler.NewCommentHandler(svc.Comments)
	images := handler.NewImageHandler(svc.Images)
	health := handler.NewHealthHandler(svc.Checks...)

	// --- Accounts ---
	e.POST("/register", users.Register)
	e.POST("/login", users.Login)
	e.PUT("/user/:userId", users.Rename)
	e.DELETE("/user/:id", users.Delete)
	e.GET("/user/:username", users.GetByUsername)

	// --- Comments ---
	e.POST("/comments", comments.Create)
	e.GET("/comments/:outfitId", comments.ListByOutfit)
	e.PUT("/comments/:commentId", comments.Update)
	e.DELETE("/comments/:commentId", comments.Delete)

	// --- Outfits and likes ---
	e.GET("/outfits", outfits.List)
	e.POST("/outfits", outfits.Create)
	e.DELETE("/outfits", outfits.DeleteMany)
	e.GET("/outfits/user/:userId", outfits.ListByUser)
	e.PUT("/outfits/:id", outfits.Update)
	e.POST("/outfits/:outfitId/like", outfits.ToggleLike)
	e.GET("/outfits/:outfitId/likes", outfits.GetLikes)

	// --- Images ---
	e.GET("/api/unsplash", images.Search)

	// --- Operations ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
