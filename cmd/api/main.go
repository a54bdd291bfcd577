// @title Quiz Course API
// @version 1.0
// @description Adaptive courses over a shared multiple-choice question bank.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-course/internal/adapter"
	"quiz-course/internal/cache"
	"quiz-course/internal/config"
	"quiz-course/internal/database"
	"quiz-course/internal/domain"
	"quiz-course/internal/handler"
	"quiz-course/internal/logger"
	"quiz-course/internal/middleware"
	"quiz-course/internal/repository"
	"quiz-course/internal/service"

	_ "quiz-course/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err), zap.String("driver", cfg.DB.Driver))
	}
	defer db.Close()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied")
	}

	// Course reads fall back to the database when redis is unavailable.
	var courseCache domain.Cache
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err != nil {
		appLogger.Warn("Redis unavailable, course cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		courseCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	tm := repository.NewTransactionManagerAdapter(db)
	tagRepository := repository.NewTagDatabaseAdapter(db)
	courseRepository := repository.NewCourseDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	instanceRepository := repository.NewCourseInstanceDatabaseAdapter(db)
	registry := service.NewRelationRegistry()

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	courseService := service.NewCourseService(tm, courseRepository, tagRepository, registry, courseCache, cfg)
	tagService := service.NewTagService(tagRepository)
	questionService := service.NewQuestionService(tm, questionRepository, tagRepository, instanceRepository, registry)
	progressionService := service.NewProgressionService(
		tm,
		courseRepository,
		questionRepository,
		instanceRepository,
		service.NewGradingEngine(instanceRepository),
		service.NewRandSource(cfg.Progression.Seed),
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, authService, handler.Handlers{
		Courses:   handler.NewCourseHandler(courseService, progressionService),
		Instances: handler.NewInstanceHandler(progressionService),
		Questions: handler.NewQuestionHandler(questionService),
		Tags:      handler.NewTagHandler(tagService),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("driver", cfg.DB.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
