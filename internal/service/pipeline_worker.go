package service

import (
	"context"
	"log"
	"sync"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
)

// PipelineWorker is the bounded supervised worker pool driving the pipeline.
// A fixed number of workers drain a fixed-capacity queue; Enqueue never
// blocks the caller.
type PipelineWorker struct {
	pipeline *Pipeline
	jobs     chan Job
	workers  int
	wg       sync.WaitGroup
}

// NewPipelineWorker creates a worker pool from config.
func NewPipelineWorker(pipeline *Pipeline, cfg *config.PipelineConfig) *PipelineWorker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	return &PipelineWorker{
		pipeline: pipeline,
		jobs:     make(chan Job, queueSize),
		workers:  workers,
	}
}

// Enqueue adds a job without blocking. A full queue returns
// domain.ErrQueueFull; the document stays pending.
func (w *PipelineWorker) Enqueue(job Job) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Start runs the workers until ctx is canceled, then blocks until in-flight
// runs finish. Jobs still queued at shutdown are dropped; their documents
// remain pending and a reprocess picks them up.
func (w *PipelineWorker) Start(ctx context.Context) {
	log.Printf("pipelineWorker: started (workers=%d, queue=%d)", w.workers, cap(w.jobs))

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i)
	}

	<-ctx.Done()
	log.Printf("pipelineWorker: shutting down, waiting for in-flight runs...")
	w.wg.Wait()
	log.Printf("pipelineWorker: shutdown complete")
}

func (w *PipelineWorker) runWorker(ctx context.Context, id int) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			log.Printf("pipelineWorker: worker %d picked up document %s", id, job.DocID)
			// A fresh context per run lets an in-flight document run out
			// its own timeout even while the pool is shutting down.
			w.pipeline.Run(context.Background(), job)
		}
	}
}
