package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fadilmartias/talent-discovery/internal/config"
	"github.com/fadilmartias/talent-discovery/internal/domain/fiber/handler"
	"github.com/fadilmartias/talent-discovery/internal/logger"
	"github.com/fadilmartias/talent-discovery/internal/middleware"
	"github.com/fadilmartias/talent-discovery/internal/model"
	"github.com/fadilmartias/talent-discovery/internal/repository"
	"github.com/fadilmartias/talent-discovery/internal/service"
	"github.com/fadilmartias/talent-discovery/internal/usecase"
	"github.com/fadilmartias/talent-discovery/internal/util"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("could not load .env file")
	}
	logger.Init()

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
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
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	storage, err := service.NewMinioStorage(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not initialize object storage")
		return
	}
	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not initialize embedding service")
		return
	}
	parser := service.NewResumeParserService()
	extractor := util.NewPDFExtractor()

	resumeRepo := repository.NewResumeRepository(db)
	folderRepo := repository.NewFolderRepository(db)

	ingestUC := usecase.NewIngestUsecase(resumeRepo, parser, gemini, storage, extractor)
	searchUC := usecase.NewSearchUsecase(resumeRepo, gemini, storage)
	folderUC := usecase.NewFolderUsecase(folderRepo, storage)

	handler.NewResumeHandler(ingestUC, searchUC).RegisterRoutes(app)
	handler.NewFolderHandler(folderUC).RegisterRoutes(app)

	logger.Info().Str("port", appConfig.Port).Msg("server running")
	if err := app.Listen(appConfig.Port); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	// TranslateError lets callers detect lost dedup races via gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not get database instance")
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		logger.Fatal().Err(err).Msg("could not enable pgvector extension")
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		logger.Fatal().Err(err).Msg("could not enable uuid-ossp extension")
	}

	err = db.AutoMigrate(
		&model.Folder{},
		&model.Resume{},
		&model.ResumeReference{},
		&model.ResumeAward{},
		&model.ResumeCertification{},
		&model.ResumeEducation{},
		&model.ResumeLanguage{},
		&model.ResumeSkill{},
		&model.ResumeWorkExperience{},
		&model.ResumeProjectExperience{},
		&model.Keyword{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	return db
}
