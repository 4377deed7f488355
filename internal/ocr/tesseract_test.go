package ocr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tsvHeader = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"

func tsvRow(level, page, block, par, line, word, conf, text string) string {
	return strings.Join([]string{level, page, block, par, line, word, "0", "0", "10", "10", conf, text}, "\t")
}

func TestParseTSVWordsAndConfidences(t *testing.T) {
	data := strings.Join([]string{
		tsvHeader,
		tsvRow("1", "1", "0", "0", "0", "0", "-1", ""),
		tsvRow("5", "1", "1", "1", "1", "1", "96", "AFFIDAVIT"),
		tsvRow("5", "1", "1", "1", "1", "2", "91.52", "OF"),
		tsvRow("5", "1", "1", "1", "1", "3", "88", "JOHN"),
	}, "\n")

	out := parseTSV([]byte(data))
	assert.Equal(t, "AFFIDAVIT OF JOHN", out.Text)
	assert.Equal(t, []int{96, 91, 88}, out.TokenConfidences)
}

func TestParseTSVLineBreaks(t *testing.T) {
	data := strings.Join([]string{
		tsvHeader,
		tsvRow("5", "1", "1", "1", "1", "1", "90", "first"),
		tsvRow("5", "1", "1", "1", "2", "1", "90", "second"),
	}, "\n")

	out := parseTSV([]byte(data))
	assert.Equal(t, "first\nsecond", out.Text)
}

func TestParseTSVSkipsNonWordRows(t *testing.T) {
	data := strings.Join([]string{
		tsvHeader,
		tsvRow("2", "1", "1", "0", "0", "0", "-1", ""),
		tsvRow("4", "1", "1", "1", "1", "0", "-1", ""),
		tsvRow("5", "1", "1", "1", "1", "1", "-1", "ghost"),
		tsvRow("5", "1", "1", "1", "1", "2", "70", "real"),
	}, "\n")

	out := parseTSV([]byte(data))
	assert.Equal(t, "real", out.Text)
	assert.Equal(t, []int{70}, out.TokenConfidences)
}

func TestParseTSVEmpty(t *testing.T) {
	out := parseTSV([]byte(tsvHeader))
	assert.Empty(t, out.Text)
	assert.Empty(t, out.TokenConfidences)
}

func TestMeanConfidence(t *testing.T) {
	assert.Equal(t, 0.0, meanConfidence(nil))
	assert.InDelta(t, 0.9, meanConfidence([]int{90}), 1e-9)
	assert.InDelta(t, 0.85, meanConfidence([]int{80, 90}), 1e-9)
}

func TestSortPaths(t *testing.T) {
	paths := []string{"/t/page-03.png", "/t/page-01.png", "/t/page-02.png"}
	sortPaths(paths)
	assert.Equal(t, []string{"/t/page-01.png", "/t/page-02.png", "/t/page-03.png"}, paths)
}
