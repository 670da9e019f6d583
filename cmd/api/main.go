package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/brieflyhq/briefly/internal/adapter/handler"
	"github.com/brieflyhq/briefly/internal/adapter/repository"
	"github.com/brieflyhq/briefly/internal/infrastructure/cache"
	"github.com/brieflyhq/briefly/internal/infrastructure/database"
	"github.com/brieflyhq/briefly/internal/infrastructure/external/comms"
	"github.com/brieflyhq/briefly/internal/infrastructure/external/oauth"
	"github.com/brieflyhq/briefly/internal/infrastructure/http/middleware"
	"github.com/brieflyhq/briefly/internal/infrastructure/storage"
	"github.com/brieflyhq/briefly/internal/usecase/auth"
	"github.com/brieflyhq/briefly/internal/usecase/conflict"
	"github.com/brieflyhq/briefly/internal/usecase/consolidate"
	"github.com/brieflyhq/briefly/internal/usecase/document"
	"github.com/brieflyhq/briefly/internal/usecase/opportunity"
	"github.com/brieflyhq/briefly/internal/usecase/summarize"
	"github.com/brieflyhq/briefly/internal/usecase/workflow"
	"github.com/brieflyhq/briefly/pkg/ai"
	"github.com/brieflyhq/briefly/pkg/config"
	"github.com/brieflyhq/briefly/pkg/jwt"
	pkgvalidator "github.com/brieflyhq/briefly/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production; manage schema with sql-migrate instead")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Redis
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Object storage for the document archive
	var archive workflow.DocumentArchive
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		logger.Warn("document archive disabled", zap.Error(err))
		archive = storage.NopArchive{}
	} else {
		archive = minioClient
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	resolutionRepo := repository.NewResolutionSessionRepository(redisClient)

	// Auth
	googleProvider := oauth.NewGoogleProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.RedirectURL,
	)
	stateManager := oauth.NewStateManager(cache.NewRedisStore(redisClient))
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	oauthService := auth.NewOAuthService(userRepo, sessionRepo, googleProvider, stateManager, jwtManager, logger)

	// Reasoning-service pipeline
	llmClient := ai.NewLLMClient(&cfg.LLM)
	summarizer := summarize.NewService(meetingRepo, llmClient, logger)
	detector := conflict.NewDetector(llmClient, logger)
	consolidator := consolidate.NewConsolidator(llmClient, logger)
	assembler := document.NewAssembler(logger)

	commsClient := comms.NewClient(&cfg.Comms)
	opportunityService := opportunity.NewService(clientRepo, opportunityRepo, meetingRepo, commsClient, logger)
	workflowService := workflow.NewService(
		meetingRepo, opportunityRepo, clientRepo, resolutionRepo,
		detector, consolidator, assembler, archive, logger,
	)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(oauthService)
	router := handler.NewRouter(
		cfg,
		handler.NewAuth(oauthService, logger),
		handler.NewMeeting(opportunityService, summarizer, logger),
		handler.NewCRM(opportunityService, logger),
		handler.NewResolution(workflowService, logger),
		handler.NewDocument(workflowService, logger),
		authMiddleware,
	)
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("server stopped")
}
