package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	tokens middleware.TokenVerifier,
	gate middleware.AdminGate,
	tokenHandler *handlers.TokenHandler,
	userHandler *handlers.UserHandler,
	favoriteHandler *handlers.ListHandler,
	saveHandler *handlers.ListHandler,
	catalogHandler *handlers.CatalogHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Liveness, health and metrics stay outside the rate limiter
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// General rate limiter: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	protected := middleware.JWTProtected(tokens)
	adminOnly := middleware.AdminRequired(gate)

	// Token
	app.Post("/jwt", tokenHandler.Issue)

	// Users
	app.Post("/users", userHandler.Register)
	app.Get("/users", protected, adminOnly, userHandler.List)
	app.Delete("/user/:id", userHandler.Delete)
	app.Get("/getprofileinfo/:id", userHandler.GetByID)
	app.Get("/userprofile/:email", userHandler.GetByEmail)
	app.Put("/updateprofile/:id", userHandler.UpdateProfile)
	app.Get("/users/admin/:email", protected, userHandler.CheckAdmin)
	app.Patch("/users/admin/:id", userHandler.PromoteToAdmin)
	app.Patch("/subscriptionStatus/:email", userHandler.MarkSubscriptionPaid)

	// Favorites
	app.Post("/favorite", favoriteHandler.Add)
	app.Get("/favorite/:email", protected, favoriteHandler.ListByOwner)
	app.Delete("/favorite/:id", favoriteHandler.Remove)

	// Watch later
	app.Post("/save", saveHandler.Add)
	app.Get("/save/:email", protected, saveHandler.ListByOwner)
	app.Delete("/save/:id", saveHandler.Remove)

	// Subscription catalog
	app.Get("/subscriptions", catalogHandler.ListPlans)
	app.Get("/subscription/:id", catalogHandler.GetPlan)

	// Payments
	app.Post("/create-payment-intent", paymentHandler.CreateIntent)
	app.Post("/payment", protected, paymentHandler.Record)
	app.Get("/allpayment", protected, paymentHandler.ListAll)
	app.Get("/payment", protected, paymentHandler.ListByOwner)
}
