package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractDOCX reads the WordprocessingML main document part out of the DOCX
// zip container and flattens it to plain text, one line per paragraph.
func extractDOCX(data []byte) Result {
	res := Result{
		Confidence:   1.0,
		Method:       "docx_xml",
		MethodsTried: []string{"docx_xml"},
	}

	text, err := docxDocumentText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		res.Confidence = 0.0
		res.OCRNeeded = false // DOCX has no image-rasterization path
		return res
	}

	res.Text = text
	return res
}

func docxDocumentText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if docXML == nil {
		return "", io.ErrUnexpectedEOF
	}

	return flattenWordXML(docXML)
}

// flattenWordXML walks the document XML collecting w:t character data,
// ending a line at each paragraph close.
func flattenWordXML(docXML []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			case "tab":
				sb.WriteByte('\t')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
