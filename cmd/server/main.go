package main

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/datapulse/internal/config"
	"github.com/fadilmartias/datapulse/internal/domain/fiber/handler"
	"github.com/fadilmartias/datapulse/internal/middleware"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/repository"
	"github.com/fadilmartias/datapulse/internal/service"
	"github.com/fadilmartias/datapulse/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	apiConfig := config.LoadAPIConfig()
	sessionConfig := config.LoadSessionConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		Immutable: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.BaseURL,
		AllowCredentials: appConfig.BaseURL != "",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))
	app.Use(middleware.Session(sessionConfig.CookieName, appConfig.IsProduction()))

	tokens := newTokenRepository()
	api := service.NewDataPulseService(apiConfig.BaseURL, apiConfig.Timeout, service.NewSessionTokenProvider(tokens))
	workspaces := usecase.NewWorkspaceRegistry()
	skills := usecase.NewSkillAnalysisUsecase(api, apiConfig.UploadRatePerSec)
	auth := usecase.NewAuthUsecase(api, tokens)

	handler.NewAuthHandler(auth, skills, workspaces).RegisterRoutes(app)
	handler.NewWorkspaceHandler(skills, workspaces).RegisterRoutes(app)

	// Monitor goroutine count and drop idle workspaces
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if n := workspaces.Sweep(sessionConfig.IdleTimeout); n > 0 {
				log.Printf("Evicted %d idle workspaces", n)
			}
			log.Printf("Active goroutines: %d, workspaces: %d", runtime.NumGoroutine(), workspaces.Len())
		}
	}()

	log.Println("Server running on ", appConfig.Port, " upstream ", apiConfig.BaseURL)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newTokenRepository keeps session tokens in postgres when DB_HOST is set
// and in memory otherwise.
func newTokenRepository() repository.TokenRepository {
	if !config.LoadDBConfig().Enabled() {
		log.Println("DB_HOST not set, session tokens are kept in memory")
		return repository.NewMemoryTokenRepository()
	}
	return repository.NewTokenRepository(ConnectDB())
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(2)
		pgDB.SetMaxOpenConns(5)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(10)
		pgDB.SetMaxOpenConns(50)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.SessionToken{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
