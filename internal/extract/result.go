package extract

// Result is the outcome of a Tier-1 native text extraction attempt.
// Extraction never errors: a document no method could read comes back with
// Confidence 0 and OCRNeeded set, and the pipeline decides what to do next.
type Result struct {
	Text         string
	Confidence   float64
	Method       string
	MethodsTried []string
	PageCount    int
	OCRNeeded    bool
}
