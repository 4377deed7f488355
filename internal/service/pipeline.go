package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
	"lexdocs/internal/entities"
	"lexdocs/internal/extract"
	"lexdocs/internal/port"
)

// Tier names recorded in the processing metadata audit trail.
const (
	tierNative         = "tier1_native_extraction"
	tierEntities       = "tier2_entity_extraction"
	tierClassification = "tier3_classification"
	tierOCR            = "tier4_ocr"
)

// TextExtractor is the native (non-OCR) extraction capability.
type TextExtractor interface {
	Extract(data []byte, fileType domain.FileType) extract.Result
}

// OCRRunner is the OCR capability over a whole file.
type OCRRunner interface {
	Run(ctx context.Context, data []byte, fileType domain.FileType) extract.Result
}

// Pipeline executes one document run end to end: claim, download, tiered
// extraction, arbitration, classification, and a single result write. Every
// failure path lands the document in failed with a diagnostic; nothing
// partial is ever persisted.
type Pipeline struct {
	docRepo    port.DocumentRepository
	storage    port.ObjectStorage
	extractor  TextExtractor
	ocr        OCRRunner
	classifier port.Classifier
	policy     domain.ReviewPolicy
	bucket     string
	runTimeout time.Duration
}

// NewPipeline wires the pipeline from its capabilities.
func NewPipeline(
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	extractor TextExtractor,
	ocr OCRRunner,
	classifier port.Classifier,
	policy domain.ReviewPolicy,
	s3cfg *config.S3Config,
	runTimeout time.Duration,
) *Pipeline {
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &Pipeline{
		docRepo:    docRepo,
		storage:    storage,
		extractor:  extractor,
		ocr:        ocr,
		classifier: classifier,
		policy:     policy,
		bucket:     s3cfg.Bucket,
		runTimeout: runTimeout,
	}
}

// Run processes one job. It never returns an error; outcomes are persisted
// on the document record.
func (p *Pipeline) Run(ctx context.Context, job Job) {
	runCtx, cancel := context.WithTimeout(ctx, p.runTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline.Run: panic processing document %s: %v", job.DocID, r)
			p.failProcessing(job.TenantID, job.DocID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := p.docRepo.ClaimForProcessing(runCtx, job.TenantID, job.DocID); err != nil {
		// Someone else holds the claim or the document is gone; either way
		// this run has nothing to do.
		log.Printf("pipeline.Run: claim for document %s rejected: %v", job.DocID, err)
		return
	}

	if err := p.process(runCtx, job); err != nil {
		log.Printf("pipeline.Run: document %s failed: %v", job.DocID, err)
		p.failProcessing(job.TenantID, job.DocID, err.Error())
	}
}

func (p *Pipeline) process(ctx context.Context, job Job) error {
	doc, err := p.docRepo.GetByID(ctx, job.TenantID, job.DocID)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	data, err := p.storage.Download(ctx, p.bucket, doc.StoragePath)
	if err != nil {
		return fmt.Errorf("downloading document bytes: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(doc.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return fmt.Errorf("stored document has unsupported extension %q", ext)
	}

	var tiers []string

	// Tier 1: native extraction, unless the caller forced OCR.
	native := extract.Result{Method: "skipped", OCRNeeded: true}
	if !job.ForceOCR {
		native = p.extractor.Extract(data, fileType)
		tiers = append(tiers, tierNative)
	}

	// Tier 4 runs early because its output competes with Tier 1 for the
	// winning text; Tiers 2 and 3 consume whichever wins.
	final := native
	ocrWon := false
	if p.policy.ShouldOCR(native.OCRNeeded, native.Confidence) {
		ocrRes := p.ocr.Run(ctx, data, fileType)
		tiers = append(tiers, tierOCR)
		final = Arbitrate(native, ocrRes)
		ocrWon = ocrRes.Confidence > native.Confidence
	}

	// Tier 2: structured entities over the winning text.
	ents := entities.Extract(final.Text)
	tiers = append(tiers, tierEntities)

	// Tier 3: classification. The fallback wrapper makes this total, but a
	// hard failure still gets a floor result rather than a failed document.
	cls, err := p.classifier.Classify(ctx, port.ClassifyInput{
		Text:           final.Text,
		EntityCounts:   entities.Counts(ents),
		Amounts:        ents[entities.ClassAmounts],
		CaseReferences: ents[entities.ClassCaseRefs],
	})
	if err != nil || cls == nil {
		log.Printf("pipeline.process: classifier failed for document %s: %v", job.DocID, err)
		cls = &domain.Classification{DocumentType: domain.DocTypeOther, Source: "rules"}
	}
	tiers = append(tiers, tierClassification)

	requiresReview := p.policy.RequiresReview(cls.Confidence, final.Confidence, ocrWon, cls.RequiresReview)

	now := time.Now().UTC()
	meta := domain.ProcessingMetadata{
		MethodsUsed:    final.MethodsTried,
		TiersCompleted: tiers,
		PageCount:      final.PageCount,
		ProcessedAt:    &now,
	}

	entsJSON, err := json.Marshal(ents)
	if err != nil {
		return fmt.Errorf("encoding entities: %w", err)
	}
	clsJSON, err := json.Marshal(cls)
	if err != nil {
		return fmt.Errorf("encoding classification: %w", err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	text := final.Text
	doc.ExtractedText = &text
	doc.TextConfidence = final.Confidence
	doc.Entities = entsJSON
	doc.Classification = clsJSON
	doc.RequiresReview = requiresReview
	doc.Metadata = metaJSON
	doc.ProcessedAt = &now

	if err := p.docRepo.UpdateResults(ctx, doc); err != nil {
		return fmt.Errorf("persisting results: %w", err)
	}

	log.Printf("pipeline.process: document %s completed (method=%s confidence=%.2f type=%s review=%v)",
		job.DocID, final.Method, final.Confidence, cls.DocumentType, requiresReview)
	return nil
}

// failProcessing records the diagnostic on its own context; the run context
// may already be past its deadline.
func (p *Pipeline) failProcessing(tenantID, docID uuid.UUID, diagnostic string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.docRepo.MarkFailed(ctx, tenantID, docID, diagnostic); err != nil {
		log.Printf("pipeline.failProcessing: marking document %s failed: %v", docID, err)
	}
}
