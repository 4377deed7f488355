package domain

// ReviewPolicy is the single home for every confidence threshold the
// pipeline consults. Thresholds used to be inlined at each decision point in
// earlier iterations; keeping them together makes them auditable and lets
// tests exercise the decisions in one place.
type ReviewPolicy struct {
	// OCRTrigger: Tier-1 confidence below this sends the document to OCR.
	OCRTrigger float64
	// ClassificationReview: classification confidence below this flags the
	// document for human review.
	ClassificationReview float64
	// OCRReview: when OCR text won arbitration, text confidence below this
	// flags the document for human review.
	OCRReview float64
	// RuleConfidenceCeiling caps rule-based classification confidence so
	// non-AI results are never mistaken for high-confidence AI output.
	RuleConfidenceCeiling float64
}

// DefaultReviewPolicy mirrors the thresholds the pipeline has always used.
func DefaultReviewPolicy() ReviewPolicy {
	return ReviewPolicy{
		OCRTrigger:            0.5,
		ClassificationReview:  0.8,
		OCRReview:             0.9,
		RuleConfidenceCeiling: 0.85,
	}
}

// ShouldOCR reports whether Tier-4 must run for a Tier-1 result.
func (p ReviewPolicy) ShouldOCR(ocrNeeded bool, tier1Confidence float64) bool {
	return ocrNeeded || tier1Confidence < p.OCRTrigger
}

// RequiresReview decides the review flag for a completed document. Review is
// the default-safe state: any low-confidence signal, or the classifier's own
// verdict, turns it on.
func (p ReviewPolicy) RequiresReview(classificationConfidence, textConfidence float64, ocrUsed, classifierFlag bool) bool {
	if classifierFlag {
		return true
	}
	if classificationConfidence < p.ClassificationReview {
		return true
	}
	if ocrUsed && textConfidence < p.OCRReview {
		return true
	}
	return false
}

// CapRuleConfidence clamps a rule-based confidence under the ceiling.
func (p ReviewPolicy) CapRuleConfidence(c float64) float64 {
	if c >= p.RuleConfidenceCeiling {
		return p.RuleConfidenceCeiling - 0.01
	}
	return c
}
