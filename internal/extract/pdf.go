package extract

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfMethod is one strategy in the PDF extraction chain. Methods are tried in
// order until one yields non-empty text.
type pdfMethod interface {
	Name() string
	Extract(data []byte) (text string, pageCount int, err error)
}

// PDFExtractor tries progressively weaker extraction methods: layout-aware
// content-stream parsing first, then general-purpose plain-text extraction,
// then a raw byte scan as last resort.
type PDFExtractor struct {
	methods []pdfMethod
}

// NewPDFExtractor builds the default three-method chain.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		methods: []pdfMethod{
			layoutMethod{},
			plainTextMethod{},
			rawScanMethod{},
		},
	}
}

// Extract walks the method chain. A failed method is recorded and the chain
// proceeds; only when every method yields empty text does the result carry
// zero confidence and an OCR flag. No method failure escapes as an error.
func (e *PDFExtractor) Extract(data []byte) Result {
	res := Result{Confidence: 1.0, Method: "none"}

	for _, m := range e.methods {
		res.MethodsTried = append(res.MethodsTried, m.Name())

		text, pages, err := tryPDFMethod(m, data)
		if pages > res.PageCount {
			res.PageCount = pages
		}
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}

		res.Text = text
		res.Method = m.Name()
		return res
	}

	res.Confidence = 0.0
	res.OCRNeeded = true
	return res
}

// tryPDFMethod isolates a single method attempt so a panicking PDF library
// only fails its own rung of the chain.
func tryPDFMethod(m pdfMethod, data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", m.Name(), r)
		}
	}()
	return m.Extract(data)
}

// layoutMethod extracts text page by page from pdfcpu's decoded content
// streams. It handles tables and positioned text better than the
// plain-text readers.
type layoutMethod struct{}

func (layoutMethod) Name() string { return "pdfcpu_layout" }

func (layoutMethod) Extract(data []byte) (string, int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", 0, fmt.Errorf("pdfcpu read: %w", err)
	}

	var parts []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(r)
		if err != nil || len(raw) == 0 {
			continue
		}
		if pageText := scanContentStream(raw); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n\n"), ctx.PageCount, nil
}

// plainTextMethod uses the ledongthuc/pdf reader, a general-purpose page
// text extractor.
type plainTextMethod struct{}

func (plainTextMethod) Name() string { return "pdf_plaintext" }

func (plainTextMethod) Extract(data []byte) (string, int, error) {
	reader, err := ltpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("pdf open: %w", err)
	}

	var parts []string
	for pageNr := 1; pageNr <= reader.NumPage(); pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n\n"), reader.NumPage(), nil
}

// rawScanMethod is the minimal last resort: inflate every stream segment it
// can find in the raw bytes and scan the result for text-showing operators.
// It works on some files the structured readers reject outright.
type rawScanMethod struct{}

func (rawScanMethod) Name() string { return "pdf_rawscan" }

var streamSegmentRe = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)

func (rawScanMethod) Extract(data []byte) (string, int, error) {
	var sb strings.Builder

	for _, m := range streamSegmentRe.FindAllSubmatch(data, -1) {
		segment := m[1]
		if zr, err := zlib.NewReader(bytes.NewReader(segment)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				segment = inflated
			}
			zr.Close()
		}
		if text := scanContentStream(segment); text != "" {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(text)
		}
	}

	// Page count is unknowable here; report pages seen as zero and let an
	// earlier method's count stand.
	return sb.String(), 0, nil
}

var stringLiteralRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// scanContentStream pulls text out of PDF content-stream operators (Tj, TJ,
// and the quote form), inserting whitespace at positioning operators.
func scanContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range stringLiteralRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeStringLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range stringLiteralRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeStringLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeSpace(sb.String())
}

// decodeStringLiteral resolves PDF escape sequences, including octal escapes.
func decodeStringLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// normalizeSpace collapses whitespace runs and strips non-printable runes.
func normalizeSpace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
