package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
	"lexdocs/internal/service"
	"lexdocs/mocks"
)

func TestPipelineWorkerQueueFull(t *testing.T) {
	p := newPipeline(new(mocks.MockDocumentRepo), new(mocks.MockObjectStorage), &stubExtractor{}, &stubOCR{}, new(mocks.MockClassifier))
	w := service.NewPipelineWorker(p, &config.PipelineConfig{Workers: 1, QueueSize: 1})

	assert.NoError(t, w.Enqueue(service.Job{DocID: uuid.New()}))
	assert.ErrorIs(t, w.Enqueue(service.Job{DocID: uuid.New()}), domain.ErrQueueFull)
}

func TestPipelineWorkerProcessesJobs(t *testing.T) {
	tenantID := uuid.New()
	docID := uuid.New()

	claimed := make(chan struct{})
	repo := new(mocks.MockDocumentRepo)
	// Rejecting the claim ends the run immediately; this test only cares
	// that the pool picked the job up.
	repo.On("ClaimForProcessing", mock.Anything, tenantID, docID).
		Run(func(mock.Arguments) { close(claimed) }).
		Return(domain.ErrAlreadyProcessing)

	p := newPipeline(repo, new(mocks.MockObjectStorage), &stubExtractor{}, &stubOCR{}, new(mocks.MockClassifier))
	w := service.NewPipelineWorker(p, &config.PipelineConfig{Workers: 2, QueueSize: 4})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.NoError(t, w.Enqueue(service.Job{TenantID: tenantID, DocID: docID}))

	select {
	case <-claimed:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the job")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker pool did not shut down")
	}
}
