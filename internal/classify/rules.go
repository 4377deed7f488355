package classify

import (
	"context"
	"strings"

	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

// RuleClassifier assigns a document type from keyword heuristics. It never
// fails and never calls out of process, so it is always available as the
// terminal fallback. Its confidence is capped below the review policy's rule
// ceiling so a heuristic result can never outrank a model result at the
// ceiling.
type RuleClassifier struct {
	policy domain.ReviewPolicy
}

// NewRuleClassifier creates a rule-based classifier governed by the given
// review policy.
func NewRuleClassifier(policy domain.ReviewPolicy) *RuleClassifier {
	return &RuleClassifier{policy: policy}
}

func (r *RuleClassifier) Classify(_ context.Context, input port.ClassifyInput) (*domain.Classification, error) {
	lower := strings.ToLower(input.Text)

	docType, confidence := matchRules(lower, input)

	return &domain.Classification{
		DocumentType: docType,
		Confidence:   r.policy.CapRuleConfidence(confidence),
		Summary:      Summarize(input.Text),
		KeyPoints:    KeyPoints(input.Text),
		Source:       "rules",
	}, nil
}

// matchRules applies the keyword rules in priority order. The first rule that
// fires wins.
func matchRules(lower string, input port.ClassifyInput) (domain.DocumentType, float64) {
	switch {
	case strings.Contains(lower, "affidavit") || strings.Contains(lower, "sworn"):
		return domain.DocTypeAffidavit, 0.8
	case strings.Contains(lower, "court") && (strings.Contains(lower, "order") || strings.Contains(lower, "judge")):
		return domain.DocTypeCourtOrder, 0.7
	case strings.Contains(lower, "agreement"):
		return domain.DocTypeAgreement, 0.7
	case strings.Contains(lower, "last will and testament") || strings.Contains(lower, "testator"):
		return domain.DocTypeWill, 0.7
	case strings.Contains(lower, "power of attorney"):
		return domain.DocTypePowerOfAttorney, 0.7
	case len(input.Amounts) > 2:
		return domain.DocTypeFinancialStmt, 0.6
	default:
		return domain.DocTypeOther, 0.3
	}
}
