// @title SplitTab API
// @version 1.0
// @description Bill splitting and settlement API.
// @BasePath /api/v1
// @securityDefinitions.apikey EditToken
// @in header
// @name Authorization
package main

import (
	"fmt"
	"log"

	"splittab/internal/config"
	emailnoop "splittab/internal/email/noop"
	emailses "splittab/internal/email/ses"
	"splittab/internal/handler"
	"splittab/internal/port"
	"splittab/internal/repository/postgres"
	"splittab/internal/router"
	"splittab/internal/service"
	s3storage "splittab/internal/storage/s3"
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
	billRepo := postgres.NewBillRepo(db)
	receiptRepo := postgres.NewReceiptRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	participantRepo := postgres.NewParticipantRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	detailRepo := postgres.NewPaymentDetailRepo(db)
	snapshotRepo := postgres.NewSnapshotRepo(db)

	// Initialize export archive storage
	s3Client, err := s3storage.NewS3Client(&cfg.Export)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailer port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailer, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailer = emailnoop.NewNoopSender()
	}

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.Token)
	billSvc := service.NewBillService(billRepo, receiptRepo, itemRepo, participantRepo, paymentRepo, snapshotRepo, tokenSvc, cfg.Bill)
	receiptSvc := service.NewReceiptService(receiptRepo, itemRepo, participantRepo)
	settlementSvc := service.NewSettlementService(snapshotRepo, emailer)
	exportSvc := service.NewExportService(snapshotRepo, s3Client, cfg.Export)
	detailSvc := service.NewPaymentDetailService(participantRepo, detailRepo)

	// Initialize handlers
	billH := handler.NewBillHandler(billSvc)
	receiptH := handler.NewReceiptHandler(receiptSvc)
	settlementH := handler.NewSettlementHandler(settlementSvc)
	exportH := handler.NewExportHandler(exportSvc)
	detailH := handler.NewPaymentDetailHandler(detailSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(tokenSvc, cfg.CORS.AllowedOrigins, billH, receiptH, settlementH, exportH, detailH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
