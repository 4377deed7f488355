package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTextUTF8(t *testing.T) {
	res := decodeText([]byte("Deed of Release — executed 12/05/2024"))
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "text_utf8", res.Method)
	assert.Contains(t, res.Text, "Deed of Release")
}

func TestDecodeTextLatin1(t *testing.T) {
	// "café" with a raw 0xE9, invalid as UTF-8 and outside the C1 block.
	res := decodeText([]byte{'c', 'a', 'f', 0xE9})
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "text_latin1", res.Method)
	assert.Equal(t, "café", res.Text)
	assert.Equal(t, []string{"text_utf8", "text_latin1"}, res.MethodsTried)
}

func TestDecodeTextWindows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in CP1252 but undefined C1 controls in
	// Latin-1, so the decode falls through.
	res := decodeText([]byte{0x93, 'h', 'i', 0x94})
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "text_cp1252", res.Method)
	assert.Equal(t, "“hi”", res.Text)
	assert.Equal(t, []string{"text_utf8", "text_latin1", "text_cp1252"}, res.MethodsTried)
}

func TestDecodeTextEmpty(t *testing.T) {
	res := decodeText(nil)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Empty(t, res.Text)
}
