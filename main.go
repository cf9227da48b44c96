package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cinehub/internal/handlers"
	"cinehub/internal/models"
	"cinehub/internal/repositories"
	"cinehub/internal/services"
	"cinehub/pkg/events"
	"cinehub/pkg/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "cinehub.db")
	viper.SetDefault("UPLOAD_DIR", "upload")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("RATING_UNIQUE_PER_TITLE", true)
	viper.SetDefault("WEEK_START", "monday")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Title{}, &models.Rating{}, &models.Routine{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Object storage ---
	uploadDir := viper.GetString("UPLOAD_DIR")
	store, err := storage.NewLocalStorage(uploadDir, "/upload")
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// --- Lifecycle events (optional) ---
	var eventsClient *events.Client
	if amqpURL := viper.GetString("AMQP_URL"); amqpURL != "" {
		eventsClient, err = events.NewClient(events.Config{URL: amqpURL})
		if err != nil {
			log.Fatalf("Failed to initialize events client: %v", err)
		}
		defer eventsClient.Close()
	} else {
		log.Println("AMQP_URL not set, lifecycle events disabled")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	titleRepo := repositories.NewGORMTitleRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	routineRepo := repositories.NewGORMRoutineRepository(db)

	// --- Initialize Services ---
	userService := services.NewUserService(userRepo, store, eventsClient)
	titleService := services.NewTitleService(titleRepo, store, eventsClient)
	ratingService := services.NewRatingService(ratingRepo, userRepo, titleRepo, eventsClient,
		viper.GetBool("RATING_UNIQUE_PER_TITLE"))
	routineService := services.NewRoutineService(routineRepo, userRepo, titleRepo, eventsClient)
	calendarService := services.NewCalendarService(routineRepo, weekStart(viper.GetString("WEEK_START")))
	statsService := services.NewStatsService(userRepo, titleRepo, ratingRepo, routineRepo)

	// --- Initialize Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	titleHandler := handlers.NewTitleHandler(titleService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Static("/upload", uploadDir)

	apiV1 := app.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1)
	titleHandler.RegisterRoutes(apiV1)
	ratingHandler.RegisterRoutes(apiV1)
	routineHandler.RegisterRoutes(apiV1)
	calendarHandler.RegisterRoutes(apiV1)
	statsHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is set, falling back
// to a local SQLite file otherwise.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

// weekStart maps the configured day name onto a weekday, defaulting to
// Monday.
func weekStart(name string) time.Weekday {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}
