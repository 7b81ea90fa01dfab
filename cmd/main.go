package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"

	jwtauth "github.com/aravind-gm/CINEPLEXFINAL/internal/auth"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/config"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/database"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/handler"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/middleware"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/repository"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/service"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL (schema is ensured before the server starts)
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Ensure the upload directory exists before serving traffic
	if err := os.MkdirAll(cfg.Upload.AvatarDir, 0o755); err != nil {
		slog.Error("failed to create upload directory", "dir", cfg.Upload.AvatarDir, "error", err)
		os.Exit(1)
	}

	// Token manager
	jwtManager, err := jwtauth.NewJWTManager(cfg.Auth)
	if err != nil {
		slog.Error("failed to initialize JWT manager", "error", err)
		os.Exit(1)
	}

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	authSvc := service.NewAuthService(userRepo, jwtManager)
	movieSvc := service.NewMovieService(movieRepo, tmdbClient, rdb)
	userSvc := service.NewUserService(userRepo, interactionRepo, prefRepo, movieRepo, rdb, cfg.Upload)
	recSvc := service.NewRecommendationService(recRepo, movieRepo, prefRepo, rdb)

	authHandler := handler.NewAuthHandler(authSvc)
	movieHandler := handler.NewMovieHandler(movieSvc)
	userHandler := handler.NewUserHandler(userSvc)
	recHandler := handler.NewRecommendationHandler(recSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Recommendation System",
		ServerHeader: "Movie-Recommendation",
		BodyLimit:    10 << 20,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials(),
	}))
	rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
	app.Use(rateLimiter.Handler())

	// Static uploads (avatars)
	app.Use("/uploads", static.New(cfg.Upload.Dir))

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	requireAuth := middleware.RequireAuth(jwtManager)

	// Root status endpoint
	app.Get("/", movieHandler.Root)

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.Me, requireAuth)

	// Movie catalog routes
	movies := app.Group("/movies")
	movies.Get("/popular", movieHandler.Popular)
	movies.Get("/genres", movieHandler.Genres)
	movies.Get("/search", movieHandler.Search)
	movies.Get("/genre/:genreID", movieHandler.ByGenre)
	movies.Get("/:id", movieHandler.Detail)
	movies.Get("/:id/similar", movieHandler.Similar)

	// Recommendation routes
	recs := app.Group("/recommendations")
	recs.Get("/personalized", recHandler.Personalized, requireAuth)
	recs.Get("/by-genre/:genreID", recHandler.ByGenre)

	// User routes (all protected)
	users := app.Group("/users", requireAuth)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/demographics", userHandler.GetDemographics)
	users.Put("/demographics", userHandler.UpdateDemographics)
	users.Post("/avatar", userHandler.UploadAvatar)
	users.Get("/avatars", userHandler.ListAvatars)
	users.Get("/watch-list", userHandler.GetWatchlist)
	users.Post("/watch-list/toggle", userHandler.ToggleWatchlist)
	users.Get("/watch-history", userHandler.GetHistory)
	users.Post("/watch-history", userHandler.AddHistory)
	users.Delete("/watch-history/:movieID", userHandler.RemoveHistory)
	users.Post("/ratings", userHandler.RateMovie)
	users.Get("/ratings", userHandler.GetRatings)
	users.Get("/ratings/:movieID", userHandler.GetRating)
	users.Put("/genre-preferences", userHandler.SetGenrePreferences)
	users.Get("/genre-preferences", userHandler.GetGenrePreferences)

	// Admin catalog sync
	app.Post("/admin/sync", movieHandler.Sync, requireAuth)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie recommendation backend", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
