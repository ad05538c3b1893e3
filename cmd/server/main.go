package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nst-sdc/skillfest-server/internal/handlers"
	"github.com/nst-sdc/skillfest-server/internal/middleware"
	"github.com/nst-sdc/skillfest-server/internal/repositories"
	"github.com/nst-sdc/skillfest-server/internal/services"
	"github.com/nst-sdc/skillfest-server/internal/workers"
	"github.com/nst-sdc/skillfest-server/pkg/config"
	"github.com/nst-sdc/skillfest-server/pkg/database"
	"github.com/nst-sdc/skillfest-server/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize logging
	logger.Init()

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize Redis; a failed ping just disables the issue cache
	redisClient := newRedisClient()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	prRepo := repositories.NewPullRequestRepository(database.DB)
	manualRankRepo := repositories.NewManualRankRepository(database.DB)
	leaderboardSettingsRepo := repositories.NewLeaderboardSettingsRepository(database.DB)
	scoreSettingsRepo := repositories.NewScoreSettingsRepository(database.DB)
	applicationRepo := repositories.NewApplicationRepository(database.DB)

	scoringService := services.NewScoringService(scoreSettingsRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, manualRankRepo, leaderboardSettingsRepo)
	adminService := services.NewAdminService(userRepo, manualRankRepo, leaderboardSettingsRepo, scoringService)
	userService := services.NewUserService(userRepo, prRepo, manualRankRepo)
	applicationService := services.NewApplicationService(applicationRepo)
	statsService := services.NewGitHubStatsService(userRepo, prRepo, scoringService)
	issueCacheService := services.NewIssueCacheService(
		redisClient,
		time.Duration(config.AppConfig.Sync.IssueCacheSeconds)*time.Second,
	)

	pointsDebouncer := services.NewPointsDebouncer(
		time.Duration(config.AppConfig.Sync.DebounceSeconds)*time.Second,
		func(login string, points int) {
			if err := adminService.SetUserPoints(login, points); err != nil {
				logger.WithError(err).Errorf("Failed to flush points for %s", login)
			}
		},
	)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(statsService, issueCacheService)

	// Initialize router
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.SessionMiddleware())

	// Setup routes
	setupRoutes(router, statsService, issueCacheService, leaderboardService, adminService, userService, applicationService, pointsDebouncer)

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")

	// Pending point edits must reach the database before exit
	pointsDebouncer.Flush()

	logger.Infof("Server stopped")
}

// newRedisClient connects to Redis for the issue cache. Returns nil when
// Redis is unreachable, which degrades every cache lookup to a miss.
func newRedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.Redis.Addr,
		Password: config.AppConfig.Redis.Password,
		DB:       config.AppConfig.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warnf("Redis unavailable, issue caching disabled")
		return nil
	}

	return client
}

func setupRoutes(
	router *gin.Engine,
	statsService *services.GitHubStatsService,
	issueCacheService *services.IssueCacheService,
	leaderboardService *services.LeaderboardService,
	adminService *services.AdminService,
	userService *services.UserService,
	applicationService *services.ApplicationService,
	pointsDebouncer *services.PointsDebouncer,
) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(statsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	issuesHandler := handlers.NewIssuesHandler(statsService, issueCacheService)
	userHandler := handlers.NewUserHandler(userService, leaderboardService, statsService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	adminHandler := handlers.NewAdminHandler(adminService, leaderboardService, userService, applicationService, pointsDebouncer)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	// Auth routes
	router.GET("/auth/github", authHandler.GitHubLogin)
	router.GET("/auth/github/callback", authHandler.GitHubCallback)
	router.GET("/logout", authHandler.Logout)

	// Public API
	api := router.Group("/api")
	{
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/issues", issuesHandler.GetIssues)
		api.POST("/applications", applicationHandler.SubmitApplication)
	}

	// Authenticated API
	authed := router.Group("/api")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/me", authHandler.Me)
		authed.POST("/sync", userHandler.SyncUser)
		authed.GET("/users", userHandler.GetUsers)
		authed.GET("/users/:login", userHandler.GetUser)
	}

	// Admin API
	router.POST("/api/admin/login", adminHandler.Login)
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/leaderboard-settings", adminHandler.GetLeaderboardSettings)
		admin.POST("/leaderboard-settings", adminHandler.UpdateLeaderboardSettings)
		admin.POST("/update-user-rank", adminHandler.UpdateUserRank)
		admin.POST("/toggle-visibility", adminHandler.ToggleUserVisibility)
		admin.POST("/assign-top-ranks", adminHandler.AssignTopRanks)
		admin.POST("/clear-manual-ranks", adminHandler.ClearManualRanks)
		admin.POST("/recalculate-points", adminHandler.RecalculatePoints)
		admin.GET("/users", adminHandler.GetUsers)
		admin.GET("/user-details", adminHandler.GetUserDetails)
		admin.GET("/export", adminHandler.ExportUsers)
		admin.GET("/applications", adminHandler.GetApplications)
	}
}
