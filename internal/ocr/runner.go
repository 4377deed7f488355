package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/semaphore"

	"lexdocs/internal/config"
	"lexdocs/internal/domain"
	"lexdocs/internal/extract"
	"lexdocs/internal/port"
)

const methodOCR = "tesseract_ocr"

// Runner drives OCR over a whole file: PDFs are rasterized page by page,
// images go straight to the engine. A weighted semaphore bounds concurrent
// engine invocations across all pipeline runs, since each one is a separate
// OS process.
type Runner struct {
	engine      port.OCREngine
	pdftoppmBin string
	maxPages    int
	dpi         int
	sem         *semaphore.Weighted
}

// NewRunner creates a Runner from config around the given engine.
func NewRunner(engine port.OCREngine, cfg *config.OCRConfig) *Runner {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 300
	}
	return &Runner{
		engine:      engine,
		pdftoppmBin: cfg.PdftoppmBin,
		maxPages:    cfg.MaxPages,
		dpi:         dpi,
		sem:         semaphore.NewWeighted(int64(concurrency)),
	}
}

// Run performs OCR and returns an extraction result. Failures never abort the
// pipeline; they come back as a zero-confidence result so an earlier tier's
// text stands.
func (r *Runner) Run(ctx context.Context, data []byte, fileType domain.FileType) extract.Result {
	res := extract.Result{Method: methodOCR, MethodsTried: []string{methodOCR}}

	var (
		texts []string
		confs []int
		err   error
	)

	switch {
	case domain.IsImageType(fileType):
		res.PageCount = 1
		texts, confs, err = r.recognizeOne(ctx, data)
	case fileType == domain.FileTypePDF:
		texts, confs, res.PageCount, err = r.recognizePDF(ctx, data)
	default:
		err = fmt.Errorf("file type %s is not OCR-able", fileType)
	}

	if err != nil {
		log.Printf("ocr.Runner.Run: %v", err)
		// Diagnostic goes in the text field at zero confidence; any tier
		// with real text wins arbitration over it.
		if fileType == domain.FileTypePDF {
			res.Text = fmt.Sprintf("PDF OCR failed: %v", err)
		} else {
			res.Text = fmt.Sprintf("OCR processing failed: %v", err)
		}
		return res
	}

	res.Text = strings.TrimSpace(strings.Join(texts, "\n\n"))
	res.Confidence = meanConfidence(confs)
	return res
}

func (r *Runner) recognizeOne(ctx context.Context, image []byte) ([]string, []int, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, fmt.Errorf("acquiring ocr slot: %w", err)
	}
	defer r.sem.Release(1)

	out, err := r.engine.Recognize(ctx, image)
	if err != nil {
		return nil, nil, err
	}
	return []string{out.Text}, out.TokenConfidences, nil
}

func (r *Runner) recognizePDF(ctx context.Context, pdf []byte) ([]string, []int, int, error) {
	pages, cleanup, err := rasterizePDF(ctx, r.pdftoppmBin, pdf, r.maxPages, r.dpi)
	if err != nil {
		return nil, nil, 0, err
	}
	defer cleanup()

	var (
		texts []string
		confs []int
	)
	for i, page := range pages {
		image, err := os.ReadFile(page)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("reading page image: %w", err)
		}
		pageTexts, pageConfs, err := r.recognizeOne(ctx, image)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("recognizing page %d: %w", i+1, err)
		}
		texts = append(texts, pageTexts...)
		confs = append(confs, pageConfs...)
	}
	return texts, confs, len(pages), nil
}

// meanConfidence averages per-token scores and scales to 0.0-1.0.
func meanConfidence(confs []int) float64 {
	if len(confs) == 0 {
		return 0
	}
	sum := 0
	for _, c := range confs {
		sum += c
	}
	return float64(sum) / float64(len(confs)) / 100.0
}
