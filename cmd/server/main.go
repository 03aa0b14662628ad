package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/config"
	"github.com/dbtsantiago/care-backend/internal/database"
	"github.com/dbtsantiago/care-backend/internal/mailer"
	"github.com/dbtsantiago/care-backend/internal/middleware"
	"github.com/dbtsantiago/care-backend/internal/repository"
	"github.com/dbtsantiago/care-backend/internal/routes"
	"github.com/dbtsantiago/care-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Token service
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatal("Invalid JWT configuration:", err)
	}

	// Mailer (no-op when SMTP is not configured)
	var mail services.Mailer = mailer.NoopMailer{}
	if cfg.SMTPHost != "" {
		smtp, err := mailer.NewSMTPMailer(cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize SMTP mailer: %v", err)
			log.Println("Notification emails will not be sent")
		} else {
			mail = smtp
			log.Println("✅ SMTP mailer initialized")
		}
	} else {
		log.Println("Warning: SMTP not configured. Notification emails will not be sent")
	}

	// Repositories
	adminRepo := repository.NewAdminRepo(database.PostgresDB)
	userRepo := repository.NewUserRepo(database.PostgresDB)
	therapistRepo := repository.NewTherapistRepo(database.PostgresDB)
	sessionRepo := repository.NewSessionRepo(database.PostgresDB)
	recordRepo := repository.NewDailyRecordRepo(database.PostgresDB)
	resetTokenRepo := repository.NewResetTokenRepo(database.PostgresDB)

	// Services
	deps := routes.Deps{
		Tokens:     tokens,
		AdminAuth:  services.NewAdminAuthService(adminRepo, tokens),
		UserAuth:   services.NewUserAuthService(userRepo, resetTokenRepo, tokens, mail),
		Users:      services.NewUserService(userRepo, therapistRepo, mail),
		Therapists: services.NewTherapistService(therapistRepo, userRepo),
		Sessions:   services.NewSessionService(sessionRepo, recordRepo),
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Setup routes
	routes.SetupRoutes(r, deps)

	log.Printf("🚀 Care backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
