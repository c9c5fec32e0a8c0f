package main

import (
	"context"
	"fmt"
	"log"

	"wooltrace/internal/ai"
	"wooltrace/internal/config"
	emailnoop "wooltrace/internal/email/noop"
	emailses "wooltrace/internal/email/ses"
	"wooltrace/internal/handler"
	"wooltrace/internal/port"
	"wooltrace/internal/repository/postgres"
	"wooltrace/internal/router"
	"wooltrace/internal/service"
	s3storage "wooltrace/internal/storage/s3"
	"wooltrace/internal/weather"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	batchRepo := postgres.NewBatchRepo(db)
	reportRepo := postgres.NewQualityReportRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize chat provider
	var chatProvider port.ChatProvider
	if cfg.Chat.APIKey != "" {
		chatProvider, err = ai.NewGeminiProvider(context.Background(), cfg.Chat)
		if err != nil {
			return fmt.Errorf("failed to initialize chat provider: %w", err)
		}
	} else {
		chatProvider = ai.NewStaticProvider()
	}

	weatherProvider := weather.NewClient(cfg.Weather)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	batchSvc := service.NewBatchService(batchRepo, reportRepo, s3Client, &cfg.S3)
	qualitySvc := service.NewQualityService(batchRepo, reportRepo)
	shopSvc := service.NewShopService(batchRepo, orderRepo, emailSender, s3Client, &cfg.S3)
	monitoringSvc := service.NewMonitoringService(weatherProvider)
	chatSvc := service.NewChatService(chatProvider)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	batchH := handler.NewBatchHandler(batchSvc, cfg.S3.MaxFileSizeMB)
	qualityH := handler.NewQualityHandler(qualitySvc)
	shopH := handler.NewShopHandler(shopSvc, userSvc)
	adminH := handler.NewAdminHandler(userSvc, batchSvc)
	monitoringH := handler.NewMonitoringHandler(monitoringSvc)
	chatH := handler.NewChatHandler(chatSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, batchH, qualityH, shopH, adminH, monitoringH, chatH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
