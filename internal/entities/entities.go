// Package entities implements pattern-based structured extraction over
// document text: dates, monetary amounts, emails, phone numbers, and
// case/court references. Extraction is pure and idempotent; running it twice
// on the same text yields the same set per class.
package entities

import (
	"regexp"
	"sort"
)

// Entity class keys, as persisted on the document record.
const (
	ClassDates    = "dates"
	ClassAmounts  = "amounts"
	ClassEmails   = "emails"
	ClassPhones   = "phone_numbers"
	ClassCaseRefs = "case_references"
)

// Classes lists every entity class in persistence order.
var Classes = []string{ClassDates, ClassAmounts, ClassEmails, ClassPhones, ClassCaseRefs}

var (
	datePatterns = []*regexp.Regexp{
		// Numeric D/M/Y with /, -, or . separators.
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`),
		// 12 May 2024
		regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{2,4}\b`),
		// May 12, 2024
		regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{2,4}\b`),
	}

	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$[\d,]+\.?\d*`),              // $1,000.00
		regexp.MustCompile(`(?i)AUD\s*[\d,]+\.?\d*`),      // AUD 1000
		regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*dollars?`), // 1000 dollars
	}

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

	// Australian national numbering: landline with area code, mobile, and
	// the +61 international prefix form.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b0[2-478]\d{8}\b`),
		regexp.MustCompile(`\b04\d{8}\b`),
		regexp.MustCompile(`\+61\s*[2-478]\d{8}\b`),
	}

	// Jurisdiction letters, year, and sequence number in either order,
	// e.g. "NSW 2024 123" or "2024 NSWSC 123".
	caseRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z]{2,4}\s*\d{4}\s*\d+\b`),
		regexp.MustCompile(`\b\d{4}\s*[A-Z]{2,6}\s*\d+\b`),
	}
)

// Extract runs every pattern class over the text. Each class is deduplicated
// and sorted so the output is set-stable regardless of match order. All
// classes are always present in the result, empty or not.
func Extract(text string) map[string][]string {
	out := map[string][]string{
		ClassDates:    collect(text, datePatterns),
		ClassAmounts:  collect(text, amountPatterns),
		ClassEmails:   collect(text, []*regexp.Regexp{emailPattern}),
		ClassPhones:   collect(text, phonePatterns),
		ClassCaseRefs: collect(text, caseRefPatterns),
	}
	return out
}

// Counts returns the number of values per class, for classifier prompts and
// status reporting.
func Counts(ents map[string][]string) map[string]int {
	counts := make(map[string]int, len(ents))
	for class, values := range ents {
		counts[class] = len(values)
	}
	return counts
}

func collect(text string, patterns []*regexp.Regexp) []string {
	seen := map[string]bool{}
	for _, p := range patterns {
		for _, m := range p.FindAllString(text, -1) {
			seen[m] = true
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
