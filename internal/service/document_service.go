package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
	"lexdocs/internal/entities"
	"lexdocs/internal/port"
	s3store "lexdocs/internal/storage/s3"
)

// Job is one queued pipeline run for a document.
type Job struct {
	TenantID uuid.UUID
	DocID    uuid.UUID
	// ForceOCR skips native extraction so the OCR result stands on its own.
	ForceOCR bool
}

// Enqueuer hands jobs to the background worker pool.
type Enqueuer interface {
	Enqueue(job Job) error
}

// SubmitInput is the DTO for document submission.
type SubmitInput struct {
	TenantID   uuid.UUID
	UploadedBy uuid.UUID
	FileName   string
	Data       []byte
}

// DocumentStatus is the lightweight processing-state view of a document.
type DocumentStatus struct {
	ID                       uuid.UUID               `json:"id"`
	OriginalName             string                  `json:"original_name"`
	Status                   domain.ProcessingStatus `json:"status"`
	ProcessingError          string                  `json:"processing_error,omitempty"`
	RequiresReview           bool                    `json:"requires_review"`
	HasText                  bool                    `json:"has_text"`
	HasSummary               bool                    `json:"has_summary"`
	TextConfidence           float64                 `json:"text_confidence"`
	ClassificationConfidence float64                 `json:"classification_confidence"`
	EntityCounts             map[string]int          `json:"entity_counts,omitempty"`
	ProcessedAt              *time.Time              `json:"processed_at,omitempty"`
	CreatedAt                time.Time               `json:"created_at"`
	UpdatedAt                time.Time               `json:"updated_at"`
}

// DocumentResult is the full extraction output, available once processing
// has completed.
type DocumentResult struct {
	ID             uuid.UUID                 `json:"id"`
	OriginalName   string                    `json:"original_name"`
	ExtractedText  string                    `json:"extracted_text"`
	TextConfidence float64                   `json:"text_confidence"`
	Entities       map[string][]string       `json:"entities"`
	Classification domain.Classification     `json:"classification"`
	RequiresReview bool                      `json:"requires_review"`
	Metadata       domain.ProcessingMetadata `json:"metadata"`
	ProcessedAt    *time.Time                `json:"processed_at"`
}

// DocumentService defines the document intake and retrieval contract.
type DocumentService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Document, error)
	GetStatus(ctx context.Context, tenantID, docID uuid.UUID) (*DocumentStatus, error)
	GetResult(ctx context.Context, tenantID, docID uuid.UUID) (*DocumentResult, error)
	Reprocess(ctx context.Context, tenantID, docID uuid.UUID, forceOCR bool) (*DocumentStatus, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error)
}

type documentService struct {
	docRepo   port.DocumentRepository
	storage   port.ObjectStorage
	enqueuer  Enqueuer
	s3cfg     *config.S3Config
	uploadCfg *config.UploadConfig
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	enqueuer Enqueuer,
	s3cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		storage:   storage,
		enqueuer:  enqueuer,
		s3cfg:     s3cfg,
		uploadCfg: uploadCfg,
	}
}

func (s *documentService) Submit(ctx context.Context, input SubmitInput) (*domain.Document, error) {
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if int64(len(input.Data)) > s.uploadCfg.MaxBytes() {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	sum := sha256.Sum256(input.Data)
	contentHash := hex.EncodeToString(sum[:])

	// Same bytes from the same tenant point at the existing record.
	if existing, err := s.docRepo.GetByContentHash(ctx, input.TenantID, contentHash); err == nil {
		return nil, &domain.DuplicateDocumentError{ExistingID: existing.ID.String()}
	} else if !errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, fmt.Errorf("checking content hash: %w", err)
	}

	docID := uuid.New()
	storageKey := s3store.ObjectKey(contentHash, "."+ext)

	doc := &domain.Document{
		ID:               docID,
		TenantID:         input.TenantID,
		FileName:         docID.String() + "." + ext,
		OriginalName:     sanitizeFileName(input.FileName),
		MimeType:         domain.AllowedFileTypes[fileType],
		ByteSize:         int64(len(input.Data)),
		ContentHash:      contentHash,
		StoragePath:      storageKey,
		ProcessingStatus: domain.ProcessingStatusPending,
		UploadedBy:       input.UploadedBy,
	}

	log.Printf("documentService.Submit: uploading %s (%s, %d bytes) for tenant %s",
		doc.OriginalName, doc.MimeType, doc.ByteSize, input.TenantID)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         storageKey,
		Body:        bytes.NewReader(input.Data),
		ContentType: doc.MimeType,
		Size:        doc.ByteSize,
	}); err != nil {
		log.Printf("documentService.Submit: storage upload failed for %s: %v", docID, err)
		return nil, domain.ErrStorageWrite
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		// A concurrent submit of the same bytes surfaces here as a duplicate.
		return nil, err
	}

	s.enqueue(Job{TenantID: input.TenantID, DocID: docID})
	return doc, nil
}

func (s *documentService) GetStatus(ctx context.Context, tenantID, docID uuid.UUID) (*DocumentStatus, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	return statusView(doc), nil
}

func (s *documentService) GetResult(ctx context.Context, tenantID, docID uuid.UUID) (*DocumentResult, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.ProcessingStatus != domain.ProcessingStatusCompleted {
		return nil, domain.ErrDocumentNotReady
	}

	result := &DocumentResult{
		ID:             doc.ID,
		OriginalName:   doc.OriginalName,
		TextConfidence: doc.TextConfidence,
		RequiresReview: doc.RequiresReview,
		ProcessedAt:    doc.ProcessedAt,
	}
	if doc.ExtractedText != nil {
		result.ExtractedText = *doc.ExtractedText
	}
	if len(doc.Entities) > 0 {
		if err := json.Unmarshal(doc.Entities, &result.Entities); err != nil {
			return nil, fmt.Errorf("decoding stored entities: %w", err)
		}
	}
	if len(doc.Classification) > 0 {
		if err := json.Unmarshal(doc.Classification, &result.Classification); err != nil {
			return nil, fmt.Errorf("decoding stored classification: %w", err)
		}
	}
	if len(doc.Metadata) > 0 {
		if err := json.Unmarshal(doc.Metadata, &result.Metadata); err != nil {
			return nil, fmt.Errorf("decoding stored metadata: %w", err)
		}
	}
	return result, nil
}

func (s *documentService) Reprocess(ctx context.Context, tenantID, docID uuid.UUID, forceOCR bool) (*DocumentStatus, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.ProcessingStatus == domain.ProcessingStatusProcessing {
		return nil, domain.ErrAlreadyProcessing
	}

	// A forced OCR run invalidates everything the previous run wrote, so
	// the reset wipes it; a plain retry keeps old output visible until the
	// new run overwrites it.
	if err := s.docRepo.ResetForReprocess(ctx, tenantID, docID, forceOCR); err != nil {
		return nil, err
	}

	log.Printf("documentService.Reprocess: document %s reset (force_ocr=%v)", docID, forceOCR)
	s.enqueue(Job{TenantID: tenantID, DocID: docID, ForceOCR: forceOCR})

	doc, err = s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	return statusView(doc), nil
}

func (s *documentService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, doc.StoragePath, s.s3cfg.PresignExpiry)
}

// enqueue hands the job off; a full queue is not an intake failure, the
// document stays pending and a later reprocess picks it up.
func (s *documentService) enqueue(job Job) {
	if err := s.enqueuer.Enqueue(job); err != nil {
		log.Printf("documentService: enqueue failed for document %s: %v", job.DocID, err)
	}
}

func statusView(doc *domain.Document) *DocumentStatus {
	status := &DocumentStatus{
		ID:              doc.ID,
		OriginalName:    doc.OriginalName,
		Status:          doc.ProcessingStatus,
		ProcessingError: doc.ProcessingError,
		RequiresReview:  doc.RequiresReview,
		HasText:         doc.HasText(),
		TextConfidence:  doc.TextConfidence,
		ProcessedAt:     doc.ProcessedAt,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	if len(doc.Classification) > 0 {
		var cls domain.Classification
		if err := json.Unmarshal(doc.Classification, &cls); err == nil {
			status.HasSummary = cls.Summary != ""
			status.ClassificationConfidence = cls.Confidence
		}
	}
	if len(doc.Entities) > 0 {
		var ents map[string][]string
		if err := json.Unmarshal(doc.Entities, &ents); err == nil {
			status.EntityCounts = entities.Counts(ents)
		}
	}
	return status
}

// sanitizeFileName strips path components and control characters from a
// client-supplied name before it is stored.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		cleaned = "document"
	}
	if len(cleaned) > 255 {
		cleaned = cleaned[len(cleaned)-255:]
	}
	return cleaned
}
