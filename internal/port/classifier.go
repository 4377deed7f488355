package port

import (
	"context"

	"lexdocs/internal/domain"
)

// ClassifyInput carries the data a classifier works from.
type ClassifyInput struct {
	Text         string
	EntityCounts map[string]int
	// Amounts and CaseReferences are passed verbatim; the AI prompt includes
	// them and the rule-based classifier counts them.
	Amounts        []string
	CaseReferences []string
}

// Classifier assigns a document type, confidence, summary, and key points.
// Implementations may fail; the pipeline wraps them so a result is always
// produced.
type Classifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*domain.Classification, error)
}
