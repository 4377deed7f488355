package classify

import (
	"context"
	"log"

	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

// FallbackClassifier tries the AI classifier and falls back to the rule-based
// one on any failure. It never returns an error and never returns nil, so a
// pipeline run always ends with a classification.
//
// Texts shorter than minTextLen skip the AI call entirely; there is not
// enough signal to justify the round trip.
type FallbackClassifier struct {
	primary    port.Classifier // nil when the AI path is disabled
	rules      port.Classifier
	minTextLen int
}

// NewFallbackClassifier wires the AI classifier (may be nil) over the
// rule-based terminal fallback.
func NewFallbackClassifier(primary, rules port.Classifier, minTextLen int) *FallbackClassifier {
	return &FallbackClassifier{
		primary:    primary,
		rules:      rules,
		minTextLen: minTextLen,
	}
}

func (f *FallbackClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*domain.Classification, error) {
	if f.primary != nil && len(input.Text) >= f.minTextLen {
		out, err := f.primary.Classify(ctx, input)
		if err == nil && out != nil {
			return out, nil
		}
		if err != nil {
			log.Printf("classify.FallbackClassifier: primary classifier failed, using rules: %v", err)
		}
	}

	out, err := f.rules.Classify(ctx, input)
	if err != nil || out == nil {
		// The rule classifier cannot fail, but guard the contract anyway.
		log.Printf("classify.FallbackClassifier: rule classifier returned err=%v", err)
		return &domain.Classification{
			DocumentType: domain.DocTypeOther,
			Confidence:   0,
			Source:       "rules",
		}, nil
	}
	return out, nil
}
