package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"TASKS_COLLECTION",
		"USERS_COLLECTION",
		"SESSIONS_COLLECTION",
		"REDIS_URL",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"SESSION_DURATION",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(engineCfg config.EngineConfig) *gin.Engine {
	router := gin.Default()

	// Repositories
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	usersRepo := repository.GetUsersRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	// Services and engine wiring
	tasksService := usecase.NewTasksService(tasksRepo)
	boardManager := usecase.NewBoardManager(tasksService, services.GlobalDayMarkerStore, engineCfg.StoreTimeout)
	usersService := usecase.NewUsersService(usersRepo, sessionRepo, services.GlobalDayMarkerStore, boardManager)

	authHandler := handler.NewAuthHandler(usersService)
	tasksHandler := handler.NewTasksHandler(tasksService, boardManager)
	boardHandler := handler.NewBoardHandler(boardManager)

	// Global middleware
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	// Operational endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"redis":  services.GlobalDayMarkerStore != nil && services.GlobalDayMarkerStore.IsConnected(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", authHandler.Logout)

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/", tasksHandler.ListTasks)
			tasks.POST("/", tasksHandler.CreateTask)
			tasks.PUT("/:id", tasksHandler.UpdateTask)
			tasks.DELETE("/:id", tasksHandler.DeleteTask)
			tasks.POST("/:id/deactivate", tasksHandler.DeactivateTask)
			tasks.POST("/:id/complete", tasksHandler.CompleteTask)
			tasks.POST("/:id/uncomplete", tasksHandler.UncompleteTask)
			tasks.POST("/reset", tasksHandler.ResetDay)
			tasks.GET("/stats", tasksHandler.GetStats)
		}

		board := protected.Group("/board")
		{
			board.GET("/", boardHandler.GetBoard)
			board.POST("/transition", boardHandler.Transition)
			board.POST("/reset", boardHandler.ManualReset)
			board.GET("/countdown", middleware.CacheControlMiddleware(time.Second), boardHandler.GetCountdown)
		}
	}

	return router
}

func main() {
	redisCfg := config.LoadRedisConfig()
	engineCfg := config.LoadEngineConfig()

	markerStore, err := services.NewDayMarkerStore(redisCfg.URL)
	if err != nil {
		log.Fatalf("Failed to connect day marker store: %v", err)
	}
	services.GlobalDayMarkerStore = markerStore
	defer markerStore.Close()

	blacklist, err := services.NewTokenBlacklist(redisCfg.URL)
	if err != nil {
		log.Fatalf("Failed to connect token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist
	defer blacklist.Close()

	dbName := os.Getenv("MONGO_DB")
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbName)); err != nil {
		log.Printf("Index setup failed: %v", err)
	}

	// Background maintenance: expired session cleanup and system metrics.
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	scheduler := services.NewMaintenanceScheduler(time.Local)
	scheduler.ScheduleInterval(engineCfg.SessionCleanupInterval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if deleted, err := sessionRepo.DeleteExpiredSessions(ctx); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		} else if deleted > 0 {
			log.Printf("Session cleanup removed %d expired sessions", deleted)
		}
	})
	scheduler.ScheduleInterval(engineCfg.MetricsSampleInterval, utils.SampleSystemMetrics)
	scheduler.Start()
	defer scheduler.Stop()

	router := setupRouter(engineCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
