package port

import "context"

// RecognizeOutput is the raw result of OCR over one image.
type RecognizeOutput struct {
	Text string
	// TokenConfidences are the engine's per-token confidence scores on a
	// 0-100 scale, as reported; the caller normalizes.
	TokenConfidences []int
}

// OCREngine abstracts optical character recognition over a single image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (*RecognizeOutput, error)
}
