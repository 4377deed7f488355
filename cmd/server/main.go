package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"lexdocs/internal/classify"
	"lexdocs/internal/classify/llm"
	"lexdocs/internal/config"
	"lexdocs/internal/extract"
	"lexdocs/internal/handler"
	"lexdocs/internal/ocr"
	"lexdocs/internal/port"
	"lexdocs/internal/repository/postgres"
	"lexdocs/internal/router"
	"lexdocs/internal/service"
	s3storage "lexdocs/internal/storage/s3"
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

	// Initialize repositories and storage
	docRepo := postgres.NewDocumentRepo(db)
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction capabilities
	extractor := extract.New()

	engine := ocr.NewTesseractEngine(&cfg.OCR)
	ocrAvailable := engine.Available()
	if !ocrAvailable {
		log.Printf("tesseract binary not found; scanned documents will complete with empty text")
	}
	ocrRunner := ocr.NewRunner(engine, &cfg.OCR)

	policy := cfg.Review.Policy()
	var aiClassifier port.Classifier
	if cfg.Classifier.APIKey != "" {
		aiClassifier = llm.NewClassifier(&cfg.Classifier)
	} else {
		log.Printf("classifier API key not set; using rule-based classification only")
	}
	classifier := classify.NewFallbackClassifier(
		aiClassifier,
		classify.NewRuleClassifier(policy),
		cfg.Classifier.MinTextLen,
	)

	// Initialize pipeline and worker pool
	pipeline := service.NewPipeline(docRepo, s3Client, extractor, ocrRunner, classifier, policy, &cfg.S3, cfg.Pipeline.RunTimeout())
	worker := service.NewPipelineWorker(pipeline, &cfg.Pipeline)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	// Initialize services and handlers
	docSvc := service.NewDocumentService(docRepo, s3Client, worker, &cfg.S3, &cfg.Upload)
	docH := handler.NewDocumentHandler(docSvc)
	healthH := handler.NewHealthHandler(db, ocrAvailable)

	r := router.Setup(cfg, docH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Run(cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Printf("shutdown signal received")
		<-workerDone
		return nil
	}
}
