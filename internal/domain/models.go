package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is the persisted record for one uploaded file and everything the
// extraction pipeline derives from it. Extraction fields stay at their zero
// values until the background run finishes.
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	TenantID         uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	FileName         string           `db:"file_name" json:"file_name"`
	OriginalName     string           `db:"original_name" json:"original_name"`
	MimeType         string           `db:"mime_type" json:"mime_type"`
	ByteSize         int64            `db:"byte_size" json:"byte_size"`
	ContentHash      string           `db:"content_hash" json:"content_hash"`
	StoragePath      string           `db:"storage_path" json:"storage_path"`
	ProcessingStatus ProcessingStatus `db:"processing_status" json:"processing_status"`
	ProcessingError  string           `db:"processing_error" json:"processing_error"`
	ExtractedText    *string          `db:"extracted_text" json:"extracted_text"`
	TextConfidence   float64          `db:"text_confidence" json:"text_confidence"`
	Entities         json.RawMessage  `db:"entities" json:"entities"`
	Classification   json.RawMessage  `db:"classification" json:"classification"`
	RequiresReview   bool             `db:"requires_review" json:"requires_review"`
	Metadata         json.RawMessage  `db:"metadata" json:"metadata"`
	UploadedBy       uuid.UUID        `db:"uploaded_by" json:"uploaded_by"`
	ProcessedAt      *time.Time       `db:"processed_at" json:"processed_at"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// HasText reports whether the arbiter has written a winning text.
func (d *Document) HasText() bool {
	return d.ExtractedText != nil && *d.ExtractedText != ""
}

// Classification is the Tier-3 output stored on the document.
type Classification struct {
	DocumentType   DocumentType `json:"document_type"`
	Confidence     float64      `json:"confidence"`
	Summary        string       `json:"summary"`
	KeyPoints      []string     `json:"key_points"`
	RequiresReview bool         `json:"requires_review"`
	Source         string       `json:"source"` // model name or "rules"
}

// ProcessingMetadata is the audit trail written by the arbiter.
type ProcessingMetadata struct {
	MethodsUsed    []string   `json:"methods_used"`
	TiersCompleted []string   `json:"tiers_completed"`
	PageCount      int        `json:"page_count"`
	ProcessedAt    *time.Time `json:"processed_at"`
}
