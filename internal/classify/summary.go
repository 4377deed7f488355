package classify

import (
	"strings"
	"unicode/utf8"
)

const (
	summaryMaxLen    = 500
	keyPointMaxCount = 5
	keyPointMaxLen   = 200
)

// keyPointMarkers are terms that make a sentence worth surfacing as a key
// point: obligations, deadlines, and dispositive language.
var keyPointMarkers = []string{
	"shall", "must", "agrees to", "ordered", "payable", "due",
	"terminat", "deadline", "undertake", "liable",
}

// Summarize produces an extractive summary from the opening sentences of the
// text, truncated to a fixed length.
func Summarize(text string) string {
	sentences := splitSentences(text)
	var b strings.Builder
	for _, s := range sentences {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		if b.Len() >= summaryMaxLen {
			break
		}
	}
	return truncate(b.String(), summaryMaxLen)
}

// truncate cuts s to at most max bytes on a rune boundary, appending an
// ellipsis when anything was cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// KeyPoints surfaces sentences containing obligation or deadline language,
// in document order, up to a fixed count.
func KeyPoints(text string) []string {
	points := []string{}
	for _, s := range splitSentences(text) {
		lower := strings.ToLower(s)
		for _, marker := range keyPointMarkers {
			if strings.Contains(lower, marker) {
				points = append(points, truncate(s, keyPointMaxLen))
				break
			}
		}
		if len(points) == keyPointMaxCount {
			break
		}
	}
	return points
}

// splitSentences is a rough sentence splitter; terminators followed by
// whitespace end a sentence. Good enough for extractive summaries, not for
// linguistics.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			atEnd := i == len(runes)-1
			if atEnd || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(cur.String()); s != "" {
					sentences = append(sentences, s)
				}
				cur.Reset()
			}
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
