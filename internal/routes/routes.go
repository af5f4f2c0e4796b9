package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/unmaphq/unmap-backend/internal/config"
	"github.com/unmaphq/unmap-backend/internal/handlers"
	"github.com/unmaphq/unmap-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	journeyHandler *handlers.JourneyHandler,
	profileHandler *handlers.ProfileHandler,
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

	// Auth is public, with a stricter rate limit: 10 req/min per IP
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

	// Protected auth routes (JWT applied per-route so public routes stay open)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Everything below requires a signed-in user.
	protected := api.Group("/p", middleware.JWTProtected(cfg))

	j := protected.Group("/journey")
	j.Post("/bootstrap", journeyHandler.Bootstrap)
	j.Get("/state", journeyHandler.State)
	j.Post("/resync", journeyHandler.Resync)
	j.Get("/stages/:stage", journeyHandler.Flow)
	j.Post("/stages/:stage/answer", journeyHandler.Answer)
	j.Post("/stages/:stage/advance", journeyHandler.Advance)
	j.Post("/stages/:stage/back", journeyHandler.Back)
	j.Post("/stages/:stage/reflection/retry", journeyHandler.RetryReflection)
	j.Post("/stages/:stage/continue", journeyHandler.Continue)

	protected.Put("/profile/name", profileHandler.SetName)
	protected.Get("/wheel", profileHandler.GetWheel)
	protected.Put("/wheel", profileHandler.SaveWheel)
	protected.Post("/checkins", profileHandler.AddCheckin)
	protected.Get("/checkins", profileHandler.ListCheckins)
	protected.Get("/reflections", profileHandler.ListReflections)
	protected.Get("/plan", profileHandler.GetPlan)
	protected.Post("/plan/generate", profileHandler.GeneratePlan)
}
