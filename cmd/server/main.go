// @title pdfcompare API
// @version 1.0
// @description Visual comparison of PDF documents with highlighted differences.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/config"
	"pdfcompare/internal/email/noop"
	sesemail "pdfcompare/internal/email/ses"
	"pdfcompare/internal/handler"
	"pdfcompare/internal/pdfdoc"
	"pdfcompare/internal/port"
	"pdfcompare/internal/repository/postgres"
	"pdfcompare/internal/router"
	"pdfcompare/internal/service"
	s3storage "pdfcompare/internal/storage/s3"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	comparisonRepo := postgres.NewComparisonRepo(db)

	s3Client, err := s3storage.NewClient(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	comparator := compare.NewComparator(pdfdoc.Opener, pdfdoc.NewWriter, compare.WithMaxPages(cfg.Compare.MaxPages))
	comparisonSvc := service.NewComparisonService(comparisonRepo, s3Client, emailSender, comparator, &cfg.S3, cfg.Compare)

	var authSvc service.AuthService
	if cfg.JWT.Enabled {
		authSvc = service.NewAuthService(cfg.JWT)
	} else {
		log.Printf("WARNING: JWT auth disabled; the API is open")
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, router.Handlers{
		Compare:    handler.NewCompareHandler(comparisonSvc),
		Comparison: handler.NewComparisonHandler(comparisonSvc),
		Health:     handler.NewHealthHandler(db),
	})

	worker := service.NewComparisonQueueWorker(comparisonRepo, comparisonSvc, service.QueueWorkerConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   cfg.Queue.JobTimeout(),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (env=%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	wg.Wait()
	log.Printf("Server stopped")
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return sesemail.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	case "", "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
