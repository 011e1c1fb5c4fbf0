package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/milena/wayfare-api/internal/assets"
	"github.com/milena/wayfare-api/internal/config"
	"github.com/milena/wayfare-api/internal/database"
	"github.com/milena/wayfare-api/internal/handlers"
	authmw "github.com/milena/wayfare-api/internal/middleware"
	"github.com/milena/wayfare-api/internal/repository"
	"github.com/milena/wayfare-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := assets.NewCloudinaryStore(cfg.Cloudinary)
	if err != nil {
		log.Fatalf("Failed to init asset store: %v", err)
	}
	coordinator := assets.NewCoordinator(store)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	tripsRepo := repository.New(db, repository.Trips)
	destinationsRepo := repository.New(db, repository.Destinations)
	certificatesRepo := repository.New(db, repository.Certificates)
	reviewsRepo := repository.New(db, repository.WrittenReviews)
	enquiriesRepo := repository.New(db, repository.Enquiries)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	usersHandler := handlers.NewUsersHandler(userService)
	tripsHandler := handlers.NewTripsHandler(tripsRepo, coordinator)
	destinationsHandler := handlers.NewDestinationsHandler(destinationsRepo, coordinator)
	certificatesHandler := handlers.NewCertificatesHandler(certificatesRepo, coordinator)
	reviewsHandler := handlers.NewWrittenReviewsHandler(reviewsRepo, coordinator)
	enquiriesHandler := handlers.NewEnquiriesHandler(enquiriesRepo, emailService, cfg.EnquiryNotifyEmail)
	uploadHandler := handlers.NewUploadHandler(store)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/refresh", authHandler.RefreshToken)
	api.Post("/auth/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))
	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	admin := api.Group("")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireAdmin())

	mainAdmin := api.Group("")
	mainAdmin.Use(authmw.Auth(jwtService))
	mainAdmin.Use(authmw.RequireMainAdmin())

	type resource struct {
		plural  string
		handler *handlers.ResourceHandler
	}
	for _, r := range []resource{
		{"trips", tripsHandler.ResourceHandler},
		{"destinations", destinationsHandler},
		{"certificates", certificatesHandler},
		{"written-reviews", reviewsHandler},
	} {
		admin.Get("/"+r.plural+"/admin", r.handler.ListAdmin)
		admin.Post("/"+r.plural, r.handler.Create)
		admin.Put("/"+r.plural+"/:id", r.handler.Update)
		admin.Delete("/"+r.plural+"/:id", r.handler.Delete)

		api.Get("/"+r.plural, r.handler.List)
	}

	api.Get("/trips/slug/:slug", tripsHandler.GetBySlug)
	api.Get("/trips/:id", tripsHandler.Get)
	api.Get("/destinations/:id", destinationsHandler.Get)
	api.Get("/certificates/:id", certificatesHandler.Get)
	api.Get("/written-reviews/:id", reviewsHandler.Get)

	api.Post("/enquiries", enquiriesHandler.Create)
	admin.Get("/enquiries", enquiriesHandler.List)
	admin.Get("/enquiries/:id", enquiriesHandler.Get)
	admin.Patch("/enquiries/:id/status", enquiriesHandler.UpdateStatus)

	admin.Post("/uploads/image", uploadHandler.UploadImage)
	admin.Post("/uploads/video", uploadHandler.UploadVideo)

	mainAdmin.Get("/users", usersHandler.List)
	mainAdmin.Post("/users", usersHandler.Create)
	mainAdmin.Delete("/users/:id", usersHandler.Delete)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
