package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes a plain-text file with a prioritized encoding list:
// UTF-8, then Latin-1, then Windows-1252. The first clean decode wins.
// Latin-1 leaves the 0x80-0x9F control block undefined, so bytes in that
// range push the file to Windows-1252, which assigns them printable glyphs.
func decodeText(data []byte) Result {
	res := Result{Method: "text_utf8", MethodsTried: []string{"text_utf8"}}

	if len(data) == 0 {
		res.Confidence = 0.0
		return res
	}

	if utf8.Valid(data) {
		res.Text = string(data)
		res.Confidence = 1.0
		return res
	}

	res.MethodsTried = append(res.MethodsTried, "text_latin1")
	if !hasC1Range(data) {
		if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
			res.Text = string(decoded)
			res.Confidence = 1.0
			res.Method = "text_latin1"
			return res
		}
	}

	res.MethodsTried = append(res.MethodsTried, "text_cp1252")
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		text := string(decoded)
		if strings.TrimSpace(text) != "" {
			res.Text = text
			res.Confidence = 1.0
			res.Method = "text_cp1252"
			return res
		}
	}

	res.Confidence = 0.0
	res.Method = "none"
	return res
}

func hasC1Range(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return true
		}
	}
	return false
}
