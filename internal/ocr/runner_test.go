package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

type stubEngine struct {
	out *port.RecognizeOutput
	err error
}

func (e *stubEngine) Recognize(_ context.Context, _ []byte) (*port.RecognizeOutput, error) {
	return e.out, e.err
}

func TestRunImageSuccess(t *testing.T) {
	engine := &stubEngine{out: &port.RecognizeOutput{
		Text:             "SWORN AFFIDAVIT",
		TokenConfidences: []int{90, 94},
	}}
	r := NewRunner(engine, &config.OCRConfig{Concurrency: 1})

	res := r.Run(context.Background(), []byte("png bytes"), domain.FileTypePNG)
	assert.Equal(t, "SWORN AFFIDAVIT", res.Text)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.Equal(t, 1, res.PageCount)
}

func TestRunImageEngineFailureCarriesDiagnostic(t *testing.T) {
	engine := &stubEngine{err: errors.New("tesseract: command not found")}
	r := NewRunner(engine, &config.OCRConfig{Concurrency: 1})

	res := r.Run(context.Background(), []byte("png bytes"), domain.FileTypePNG)
	assert.Zero(t, res.Confidence)
	assert.Contains(t, res.Text, "OCR processing failed")
	assert.Contains(t, res.Text, "tesseract: command not found")
	assert.Equal(t, []string{methodOCR}, res.MethodsTried)
}

func TestRunPDFRasterizeFailureCarriesDiagnostic(t *testing.T) {
	engine := &stubEngine{out: &port.RecognizeOutput{Text: "unreached"}}
	r := NewRunner(engine, &config.OCRConfig{
		Concurrency: 1,
		PdftoppmBin: "pdftoppm-not-installed-anywhere",
	})

	res := r.Run(context.Background(), []byte("%PDF-1.4"), domain.FileTypePDF)
	assert.Zero(t, res.Confidence)
	assert.Contains(t, res.Text, "PDF OCR failed")
}

func TestRunRejectsNonOCRableType(t *testing.T) {
	engine := &stubEngine{out: &port.RecognizeOutput{Text: "unreached"}}
	r := NewRunner(engine, &config.OCRConfig{Concurrency: 1})

	res := r.Run(context.Background(), []byte("plain text"), domain.FileTypeTXT)
	assert.Zero(t, res.Confidence)
	assert.Contains(t, res.Text, "OCR processing failed")
}
