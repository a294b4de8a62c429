package service

import (
	"context"
	"log"
	"sync"
	"time"

	"pdfcompare/internal/port"
)

// QueueWorkerConfig holds settings for the comparison queue worker.
type QueueWorkerConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
	JobTimeout   time.Duration
}

// ComparisonQueueWorker polls for queued comparisons and runs them.
type ComparisonQueueWorker struct {
	repo    port.ComparisonRepository
	service ComparisonService
	cfg     QueueWorkerConfig
	wg      sync.WaitGroup
}

// NewComparisonQueueWorker creates a new ComparisonQueueWorker.
func NewComparisonQueueWorker(repo port.ComparisonRepository, svc ComparisonService, cfg QueueWorkerConfig) *ComparisonQueueWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &ComparisonQueueWorker{repo: repo, service: svc, cfg: cfg}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight comparisons have finished.
func (w *ComparisonQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("comparisonQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d, timeout=%s)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries, w.cfg.JobTimeout)

	for {
		select {
		case <-ctx.Done():
			log.Printf("comparisonQueueWorker: shutting down, waiting for in-flight comparisons...")
			w.wg.Wait()
			log.Printf("comparisonQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.poll(ctx, sem)
		}
	}
}

func (w *ComparisonQueueWorker) poll(ctx context.Context, sem chan struct{}) {
	available := w.cfg.Concurrency - len(sem)
	if available <= 0 {
		return
	}

	// Claimed rows come back with attempts already incremented.
	jobs, err := w.repo.ClaimQueued(ctx, available)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("comparisonQueueWorker: ClaimQueued error: %v", err)
		}
		return
	}

	for i := range jobs {
		job := jobs[i]

		sem <- struct{}{}
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer func() { <-sem }()

			// Detached from the poll context so shutdown lets the job finish.
			jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
			defer cancel()

			log.Printf("comparisonQueueWorker: dispatching comparison %s (attempt %d)", job.ID, job.Attempts)
			w.service.Process(jobCtx, &job, w.cfg.MaxRetries)
		}()
	}
}
