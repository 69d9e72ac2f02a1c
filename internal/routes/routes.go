package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/wastewatch/wastewatch-backend/internal/config"
	"github.com/wastewatch/wastewatch-backend/internal/handlers"
	"github.com/wastewatch/wastewatch-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	engagementHandler *handlers.EngagementHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	contentHandler *handlers.ContentHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth endpoints are public but get a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Put("/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)

	// Report reads are public, writes need identity
	api.Get("/reports/city/:city", reportHandler.ListByCity)
	api.Get("/reports/:id", reportHandler.Get)
	api.Get("/reports/:id/comments", engagementHandler.ListComments)
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.Create)
	api.Post("/reports/:id/like", middleware.JWTProtected(cfg), engagementHandler.ToggleLike)
	api.Post("/reports/:id/comments", middleware.JWTProtected(cfg), engagementHandler.AddComment)

	// City analytics
	api.Get("/stats/:city", analyticsHandler.CityStats)
	api.Get("/leaderboard/:city", analyticsHandler.Leaderboard)

	// Cached external content
	api.Get("/content/news/:city", contentHandler.News)
	api.Get("/content/briefing/:city", contentHandler.Briefing)

	// Status transitions are an administrative action
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Put("/reports/:id/status", reportHandler.UpdateStatus)
}
