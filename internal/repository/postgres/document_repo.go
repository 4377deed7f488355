package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, tenant_id, file_name, original_name, mime_type,
		byte_size, content_hash, storage_path,
		processing_status, processing_error,
		extracted_text, text_confidence, entities, classification,
		requires_review, metadata,
		uploaded_by, processed_at, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10,
		$11, $12, $13, $14,
		$15, $16,
		$17, $18, $19, $20
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.FileName, doc.OriginalName, doc.MimeType,
		doc.ByteSize, doc.ContentHash, doc.StoragePath,
		doc.ProcessingStatus, doc.ProcessingError,
		doc.ExtractedText, doc.TextConfidence, doc.Entities, doc.Classification,
		doc.RequiresReview, doc.Metadata,
		doc.UploadedBy, doc.ProcessedAt, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "content_hash") {
			existing, lookupErr := r.GetByContentHash(ctx, doc.TenantID, doc.ContentHash)
			if lookupErr == nil {
				return &domain.DuplicateDocumentError{ExistingID: existing.ID.String()}
			}
			return &domain.DuplicateDocumentError{}
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByContentHash(ctx context.Context, tenantID uuid.UUID, contentHash string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE tenant_id = $1 AND content_hash = $2", tenantID, contentHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByContentHash: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByTenant count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByTenant: %w", err)
	}
	return docs, total, nil
}

// ClaimForProcessing is the single-flight guard: the conditional UPDATE only
// succeeds while the row is still pending, so two workers racing on the same
// document cannot both claim it.
func (r *documentRepo) ClaimForProcessing(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET processing_status = $1, processing_error = '', updated_at = $2
		 WHERE id = $3 AND tenant_id = $4 AND processing_status = $5`,
		domain.ProcessingStatusProcessing, time.Now().UTC(),
		docID, tenantID, domain.ProcessingStatusPending)
	if err != nil {
		return fmt.Errorf("documentRepo.ClaimForProcessing: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		if _, getErr := r.GetByID(ctx, tenantID, docID); getErr != nil {
			return getErr
		}
		return domain.ErrAlreadyProcessing
	}
	return nil
}

// UpdateResults writes every extraction field and the completed status in one
// statement, so a run that times out mid-pipeline leaves nothing partial
// behind.
func (r *documentRepo) UpdateResults(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			extracted_text = $1, text_confidence = $2,
			entities = $3, classification = $4,
			requires_review = $5, metadata = $6,
			processing_status = $7, processing_error = '',
			processed_at = $8, updated_at = $9
		 WHERE id = $10 AND tenant_id = $11`,
		doc.ExtractedText, doc.TextConfidence,
		doc.Entities, doc.Classification,
		doc.RequiresReview, doc.Metadata,
		domain.ProcessingStatusCompleted,
		doc.ProcessedAt, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateResults: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) MarkFailed(ctx context.Context, tenantID, docID uuid.UUID, diagnostic string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET processing_status = $1, processing_error = $2, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5`,
		domain.ProcessingStatusFailed, diagnostic, time.Now().UTC(),
		docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// ResetForReprocess moves a document back to pending so it can be enqueued
// again. Pending documents pass the guard too: a pending row whose job was
// dropped (full queue, shutdown) is recovered this way. Only in-flight
// documents are left alone; rejecting those is the caller's job, and the
// status guard here backs it up.
func (r *documentRepo) ResetForReprocess(ctx context.Context, tenantID, docID uuid.UUID, clearResults bool) error {
	query := `UPDATE documents SET processing_status = $1, processing_error = '', updated_at = $2
		 WHERE id = $3 AND tenant_id = $4 AND processing_status IN ($5, $6, $7)`
	args := []interface{}{
		domain.ProcessingStatusPending, time.Now().UTC(),
		docID, tenantID,
		domain.ProcessingStatusPending, domain.ProcessingStatusCompleted, domain.ProcessingStatusFailed,
	}
	if clearResults {
		query = `UPDATE documents SET processing_status = $1, processing_error = '',
			extracted_text = NULL, text_confidence = 0,
			entities = NULL, classification = NULL,
			requires_review = FALSE, metadata = NULL,
			processed_at = NULL, updated_at = $2
		 WHERE id = $3 AND tenant_id = $4 AND processing_status IN ($5, $6, $7)`
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("documentRepo.ResetForReprocess: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		if _, getErr := r.GetByID(ctx, tenantID, docID); getErr != nil {
			return getErr
		}
		return domain.ErrAlreadyProcessing
	}
	return nil
}
