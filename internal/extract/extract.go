package extract

import (
	"log"

	"lexdocs/internal/domain"
)

// Extractor dispatches raw bytes to the format-specific Tier-1 extractor.
type Extractor struct {
	pdf *PDFExtractor
}

// New creates an Extractor with the default PDF method chain.
func New() *Extractor {
	return &Extractor{pdf: NewPDFExtractor()}
}

// Extract runs the native text extraction for the given file type. It never
// panics and never returns an error; every failure mode degrades to a
// zero-confidence result.
func (e *Extractor) Extract(data []byte, fileType domain.FileType) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract.Extract: recovered from %s extractor panic: %v", fileType, r)
			res = Result{
				Confidence:   0.0,
				Method:       "none",
				MethodsTried: append(res.MethodsTried, string(fileType)+"_panic"),
				OCRNeeded:    true,
			}
		}
	}()

	switch {
	case fileType == domain.FileTypePDF:
		return e.pdf.Extract(data)
	case fileType == domain.FileTypeDOCX:
		return extractDOCX(data)
	case fileType == domain.FileTypeTXT:
		return decodeText(data)
	case domain.IsImageType(fileType):
		// Images have no native text path; Tier-1 is a direct hand-off to OCR.
		return Result{
			Confidence:   0.0,
			Method:       "image_direct",
			MethodsTried: []string{"image_direct"},
			PageCount:    1,
			OCRNeeded:    true,
		}
	default:
		return Result{
			Confidence:   0.0,
			Method:       "none",
			MethodsTried: []string{"none"},
			OCRNeeded:    true,
		}
	}
}
