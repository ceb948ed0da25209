// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "skillswap/docs" // swagger docs
	"skillswap/internal/ai"
	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/featureflags"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/repository"
	"skillswap/internal/service"
	"skillswap/internal/session"
	"skillswap/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo     repository.UserRepository
	sessions     session.Store
	store        storage.Storage
	notifier     *notifications.Notifier
	relay        *notifications.Relay
	featureFlags *featureflags.Manager

	authService           *service.AuthService
	userService           *service.UserService
	avatarService         *service.AvatarService
	skillService          *service.SkillService
	statsService          *service.StatsService
	matchService          *service.MatchService
	messageService        *service.MessageService
	contentService        *service.ContentService
	recommendationService *service.RecommendationService
	chatbotService        *service.ChatbotService
	ratingService         *service.RatingService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; sessions then live in memory and cross-instance
// fan-out, caching and rate limiting are skipped.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	aiClient := ai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	return newServer(cfg, db, redisClient, store, aiClient), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Storage, aiClient ai.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	userSkillRepo := repository.NewUserSkillRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	contentRepo := repository.NewContentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var backend session.Backend = session.NewMemoryBackend()
	if redisClient != nil {
		backend = session.NewRedisBackend(redisClient)
	}
	sessions := session.NewManager(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour, backend)

	flags := featureflags.NewManager(cfg.FeatureFlags)
	for _, name := range flags.Unknown() {
		middleware.Logger.Warn("ignoring unknown feature flag", slog.String("flag", name))
	}
	notifier := notifications.NewNotifier(redisClient)
	relay := notifications.NewRelay(notifications.RelayConfig{
		Sessions: sessions,
		Users:    userRepo,
		Notifier: notifier,
		Targeted: func(userID uint) bool { return flags.Enabled(featureflags.TargetedChat, userID) },
	})

	var validator service.PerspectiveValidator = service.AcceptAllPerspectives{}
	if flags.Enabled(featureflags.MatchVerification, 0) {
		validator = service.TeachRecordValidator{UserSkills: userSkillRepo}
	}

	maxUpload := service.DefaultUploadMaxBytes
	if cfg.UploadMaxMB > 0 {
		maxUpload = int64(cfg.UploadMaxMB) << 20
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("skillswap-api"),
		userRepo:       userRepo,
		sessions:       sessions,
		store:          store,
		notifier:       notifier,
		relay:          relay,
		featureFlags:   flags,

		authService:           service.NewAuthService(userRepo, sessions),
		userService:           service.NewUserService(userRepo),
		avatarService:         service.NewAvatarService(userRepo, store),
		skillService:          service.NewSkillService(skillRepo, userSkillRepo),
		statsService:          service.NewStatsService(statsRepo, userRepo, time.Duration(cfg.LeaderboardCacheS)*time.Second),
		matchService:          service.NewMatchService(matchRepo, userRepo, userSkillRepo, validator, relay),
		messageService:        service.NewMessageService(messageRepo, userRepo, relay),
		contentService:        service.NewContentService(contentRepo, store, aiClient, maxUpload),
		recommendationService: service.NewRecommendationService(userSkillRepo, aiClient),
		chatbotService:        service.NewChatbotService(userRepo, userSkillRepo, aiClient),
		ratingService:         service.NewRatingService(ratingRepo, userRepo, skillRepo),
	}
	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:     "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SkillSwap Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Locally stored uploads and avatars
	if local, ok := s.store.(*storage.LocalStorage); ok {
		app.Static("/uploads", local.Root(), fiber.Static{ByteRange: true})
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public leaderboard
	api.Get("/leaderboard", s.GetLeaderboard)

	// Chat relay; authentication is optional and resolved per frame
	api.Get("/ws", s.WebSocketUpgrade(), s.WebSocketRelayHandler())

	protected := api.Group("", s.AuthRequired())

	// Current user routes. Specific /current/* routes before /:id.
	users := protected.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/current", s.GetCurrentUser)
	users.Patch("/current", s.UpdateCurrentUser)
	users.Post("/current/avatar", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "avatar"), s.UploadAvatar)
	users.Get("/current/skills", s.GetCurrentUserSkills)
	users.Post("/current/skills", s.AddCurrentUserSkill)
	users.Patch("/current/skills/:id", s.UpdateCurrentUserSkill)
	users.Get("/current/skill-recommendations", s.GetSkillRecommendations)
	users.Get("/current/match-advice", s.GetMatchAdvice)
	users.Get("/current/dashboard", s.GetDashboard)
	users.Get("/current/stats", s.GetCurrentUserStats)
	users.Get("/current/ratings", s.GetCurrentUserRatings)
	users.Get("/:id", s.GetUserProfile)

	// Skill catalogue
	skills := protected.Group("/skills")
	skills.Get("/", s.ListSkills)
	skills.Post("/", s.CreateSkill)

	// Match routes. /connect/:id is kept for existing clients.
	matches := protected.Group("/matches")
	matches.Get("/", s.GetMatches)
	matches.Post("/", s.CreateMatch)
	matches.Post("/connect/:id", s.ConnectMatch)
	matches.Post("/:id/reject", s.RejectMatch)

	// Direct messages
	messages := protected.Group("/messages")
	messages.Get("/", s.GetInbox)
	messages.Post("/", s.SendMessage)
	messages.Get("/:userId", s.GetConversation)

	// Uploaded learning content
	uploadLimit := middleware.RateLimit(s.redis, 10, 10*time.Minute, "uploads")
	protected.Post("/uploads", uploadLimit, s.UploadContent)
	content := protected.Group("/content")
	content.Get("/", s.GetContent)
	content.Post("/upload", uploadLimit, s.UploadContent)

	protected.Post("/ratings", s.CreateRating)

	protected.Post("/chatbot", middleware.RateLimit(
		s.redis, 20, time.Minute, "chatbot"), s.Chatbot)

	protected.Get("/feature-flags", s.GetFeatureFlags)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a nil
// client reports "unavailable" without failing readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "SkillSwap API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the session authentication middleware.
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.SessionAuth(s.sessions)
}

// App builds the Fiber application with middleware and routes. Start uses it;
// tests call it directly.
func (s *Server) App() *fiber.App {
	bodyLimit := int(service.DefaultUploadMaxBytes)
	if s.config.UploadMaxMB > 0 {
		bodyLimit = s.config.UploadMaxMB << 20
	}
	app := fiber.New(fiber.Config{
		AppName:   "SkillSwap API",
		BodyLimit: bodyLimit + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.App()

	// Wire the relay to Redis pub/sub if available
	if s.notifier.Enabled() {
		go func() {
			if err := s.relay.StartWiring(s.shutdownCtx); err != nil {
				middleware.Logger.Error("failed to start relay wiring",
					slog.String("hub", s.relay.Name()), slog.String("error", err.Error()))
			}
		}()
	}

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the relay subscriber
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Close WebSocket connections first so their handlers return
	if err := s.relay.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down relay", slog.String("error", err.Error()))
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
