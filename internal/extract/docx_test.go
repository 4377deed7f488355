package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCXParagraphs(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>SERVICE AGREEMENT</w:t></w:r></w:p>
    <w:p><w:r><w:t>The supplier shall deliver</w:t></w:r><w:r><w:t xml:space="preserve"> monthly reports.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	res := extractDOCX(buildDOCX(t, docXML))
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "docx_xml", res.Method)
	assert.Equal(t, "SERVICE AGREEMENT\nThe supplier shall deliver monthly reports.", res.Text)
	assert.False(t, res.OCRNeeded)
}

func TestExtractDOCXTabs(t *testing.T) {
	docXML := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Name:</w:t><w:tab/><w:t>Jane</w:t></w:r></w:p></w:body></w:document>`

	res := extractDOCX(buildDOCX(t, docXML))
	assert.Equal(t, "Name:\tJane", res.Text)
}

func TestExtractDOCXNotAZip(t *testing.T) {
	res := extractDOCX([]byte("this is not a zip archive"))
	assert.Equal(t, 0.0, res.Confidence)
	assert.False(t, res.OCRNeeded)
}

func TestExtractDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<styles/>"))
	require.NoError(t, zw.Close())

	res := extractDOCX(buf.Bytes())
	assert.Equal(t, 0.0, res.Confidence)
}

func TestExtractDOCXEmptyBody(t *testing.T) {
	docXML := `<w:document xmlns:w="x"><w:body></w:body></w:document>`
	res := extractDOCX(buildDOCX(t, docXML))
	assert.Equal(t, 0.0, res.Confidence)
	assert.Empty(t, res.Text)
}
