package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lexdocs/internal/domain"
)

func TestScanContentStreamOperators(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n(IN THE SUPREME COURT) Tj\n0 -14 Td\n(OF NEW SOUTH WALES) Tj\nET\n")
	text := scanContentStream(stream)
	assert.Equal(t, "IN THE SUPREME COURT OF NEW SOUTH WALES", text)
}

func TestScanContentStreamTJArray(t *testing.T) {
	stream := []byte("[(Order) -250 (made) -250 (12/05/2024)] TJ\n")
	text := scanContentStream(stream)
	assert.Equal(t, "Ordermade12/05/2024", text)
}

func TestScanContentStreamNextLineQuote(t *testing.T) {
	stream := []byte("(first line) Tj\n(second line)'\n")
	text := scanContentStream(stream)
	assert.Equal(t, "first line second line", text)
}

func TestDecodeStringLiteralEscapes(t *testing.T) {
	assert.Equal(t, "a(b)c", decodeStringLiteral([]byte(`a\(b\)c`)))
	assert.Equal(t, "tab\there", decodeStringLiteral([]byte(`tab\there`)))
	assert.Equal(t, "A", decodeStringLiteral([]byte(`\101`)))
	assert.Equal(t, `back\slash`, decodeStringLiteral([]byte(`back\\slash`)))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeSpace("a  \n\t b   c"))
	assert.Equal(t, "", normalizeSpace("   "))
}

func TestRawScanMethodInflatesNothingButFindsPlainStreams(t *testing.T) {
	pdf := []byte("%PDF-1.4\nstream\n(Sworn before me) Tj\nendstream\n")
	text, pages, err := rawScanMethod{}.Extract(pdf)
	assert.NoError(t, err)
	assert.Equal(t, 0, pages)
	assert.Equal(t, "Sworn before me", text)
}

func TestExtractorImageHandsOffToOCR(t *testing.T) {
	res := New().Extract([]byte{0xFF, 0xD8}, domain.FileTypeJPG)
	assert.Equal(t, "image_direct", res.Method)
	assert.Equal(t, 0.0, res.Confidence)
	assert.True(t, res.OCRNeeded)
	assert.Equal(t, 1, res.PageCount)
}

func TestExtractorUnknownType(t *testing.T) {
	res := New().Extract([]byte("data"), domain.FileType("zip"))
	assert.Equal(t, 0.0, res.Confidence)
	assert.True(t, res.OCRNeeded)
}

func TestExtractorGarbagePDFDegradesToOCR(t *testing.T) {
	res := New().Extract([]byte("not a pdf at all"), domain.FileTypePDF)
	assert.Equal(t, 0.0, res.Confidence)
	assert.True(t, res.OCRNeeded)
	assert.NotEmpty(t, res.MethodsTried)
}
