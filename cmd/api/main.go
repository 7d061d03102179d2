package main

import (
	"context"
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reselltrack/reselltrack_pro_be/internal/cache"
	"github.com/reselltrack/reselltrack_pro_be/internal/config"
	"github.com/reselltrack/reselltrack_pro_be/internal/db"
	"github.com/reselltrack/reselltrack_pro_be/internal/demo"
	"github.com/reselltrack/reselltrack_pro_be/internal/handlers"
	"github.com/reselltrack/reselltrack_pro_be/internal/logging"
	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/middleware"
	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/services/checkout"
	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Error("database connect", "err", err)
		os.Exit(1)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Meeting{},
		&models.Category{},
		&models.AnalyticsEvent{},
		&models.CheckoutSession{},
	); err != nil {
		log.Error("automigrate", "err", err)
		os.Exit(1)
	}

	categories := store.NewCategoryStore(gdb)
	if err := categories.Seed(context.Background()); err != nil {
		log.Error("seed categories", "err", err)
		os.Exit(1)
	}

	redis := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log)
	if err := redis.Ping(context.Background()); err != nil {
		log.Error("redis connect", "err", err)
		os.Exit(1)
	}
	defer redis.Close()

	m := metrics.Registry(cfg.MetricsNamespace)

	products := store.NewProductStore(gdb)
	meetings := store.NewMeetingStore(gdb)
	analytics := store.NewAnalyticsStore(gdb)
	lifecycle := demo.NewLifecycle(products, meetings, analytics, log)

	checkoutSvc := checkout.NewService(cfg.PaymentAPIKey, cfg.PaymentPrivateKey, cfg.PaymentBaseURL)

	authH := &handlers.AuthHandler{
		DB: gdb, Cache: redis, Log: log,
		JWTSecret: cfg.JWTSecret, Expires: cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB: gdb, JWTSecret: cfg.JWTSecret, Expires: cfg.JWTExpiresMin,
		GoogleClientID: cfg.GoogleClientID, GoogleSecret: cfg.GoogleSecret,
		GoogleRedirect: cfg.GoogleRedirect, FrontendBaseURL: cfg.FrontendBaseURL,
	}
	productH := &handlers.ProductHandler{Products: products, Analytics: analytics, Cache: redis, Log: log, Metrics: m}
	meetingH := &handlers.MeetingHandler{Meetings: meetings, Products: products, Cache: redis, Log: log, Metrics: m}
	categoryH := &handlers.CategoryHandler{Categories: categories, Log: log}
	dashboardH := &handlers.DashboardHandler{Products: products, Meetings: meetings, Cache: redis, Log: log, Metrics: m}
	analyticsH := &handlers.AnalyticsHandler{Analytics: analytics, Log: log, Metrics: m}
	demoH := &handlers.DemoHandler{
		Lifecycle: lifecycle, Cache: redis, Metrics: m, Log: log,
		JWTSecret: cfg.JWTSecret, Expires: cfg.JWTExpiresMin,
	}
	billingH := &handlers.BillingHandler{
		DB: gdb, Checkout: checkoutSvc, Log: log,
		AppBaseURL: cfg.AppBaseURL, FrontendURL: cfg.FrontendBaseURL,
	}

	app := fiber.New(fiber.Config{AppName: "reselltrack-pro"})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.CollectMetrics(m))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// public
	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Post("/forgot-password", authH.ForgotPassword)
	auth.Post("/reset-password", authH.ResetPassword)
	auth.Get("/google", googleH.GoogleStart)
	auth.Get("/google/callback", googleH.GoogleCallback)

	api.Get("/billing/plans", billingH.Plans)
	api.Get("/categories", categoryH.List)
	api.Post("/billing/webhook", billingH.Webhook)
	api.Post("/demo/start", demoH.Start)

	// authenticated (real or demo session)
	authed := api.Group("",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachSession(),
	)

	authed.Get("/auth/me", authH.Me)
	authed.Post("/demo/reset", demoH.Reset)
	authed.Post("/demo/exit", demoH.Exit)

	authed.Get("/products", productH.List)
	authed.Get("/products/:id", productH.Get)
	authed.Get("/meetings", meetingH.List)
	authed.Get("/meetings/:id", meetingH.Get)
	authed.Get("/dashboard", dashboardH.Summary)
	authed.Get("/analytics/summary", analyticsH.Summary)
	authed.Get("/analytics/events", analyticsH.Events)
	authed.Get("/billing/subscription", billingH.Subscription)

	// mutating routes are soft-blocked for demo sessions
	writes := authed.Group("", middleware.BlockDemoWrites())
	writes.Post("/products", productH.Create)
	writes.Put("/products/:id", productH.Update)
	writes.Post("/products/:id/sold", productH.MarkSold)
	writes.Delete("/products/:id", productH.Delete)
	writes.Post("/meetings", meetingH.Create)
	writes.Put("/meetings/:id", meetingH.Update)
	writes.Patch("/meetings/:id/status", meetingH.SetStatus)
	writes.Delete("/meetings/:id", meetingH.Delete)

	// account + billing surfaces never apply to the demo identity
	real := authed.Group("", middleware.RequireReal())
	real.Post("/auth/change-password", authH.ChangePassword)
	real.Put("/auth/profile", authH.UpdateProfile)
	real.Post("/auth/tutorial-complete", authH.CompleteTutorial)
	real.Post("/billing/checkout", billingH.CreateCheckout)
	real.Post("/billing/portal", billingH.Portal)

	log.Info("listening", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}
