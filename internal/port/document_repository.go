package port

import (
	"context"

	"github.com/google/uuid"

	"lexdocs/internal/domain"
)

// DocumentRepository is the persistence contract for document records. All
// reads and writes are tenant-scoped.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	// GetByContentHash returns domain.ErrDocumentNotFound when no record
	// exists for the (tenant, hash) pair.
	GetByContentHash(ctx context.Context, tenantID uuid.UUID, contentHash string) (*domain.Document, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Document, int, error)

	// ClaimForProcessing transitions pending -> processing atomically. It
	// returns domain.ErrAlreadyProcessing when the document is not claimable,
	// which is what keeps at most one pipeline run in flight per document.
	ClaimForProcessing(ctx context.Context, tenantID, docID uuid.UUID) error
	// UpdateResults writes the arbitrated extraction fields and marks the
	// document completed in a single statement.
	UpdateResults(ctx context.Context, doc *domain.Document) error
	MarkFailed(ctx context.Context, tenantID, docID uuid.UUID, diagnostic string) error
	// ResetForReprocess moves a document back to pending unless it is
	// in flight, clearing extraction fields when clearResults is set.
	ResetForReprocess(ctx context.Context, tenantID, docID uuid.UUID, clearResults bool) error
}
