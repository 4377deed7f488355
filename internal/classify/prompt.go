package classify

import (
	"fmt"
	"strings"
)

// maxPromptTextLen bounds how much document text is sent to the model.
const maxPromptTextLen = 6000

// BuildClassificationPrompt returns the classification prompt for a legal
// document, including the already-extracted entity summary so the model does
// not re-derive it.
func BuildClassificationPrompt(text string, entityCounts map[string]int, amounts, caseRefs []string) string {
	if len(text) > maxPromptTextLen {
		text = text[:maxPromptTextLen]
	}

	var entitySummary strings.Builder
	for _, class := range []string{"dates", "amounts", "emails", "phone_numbers", "case_references"} {
		fmt.Fprintf(&entitySummary, "- %s: %d\n", class, entityCounts[class])
	}
	if len(amounts) > 0 {
		fmt.Fprintf(&entitySummary, "- amount values: %s\n", strings.Join(amounts, ", "))
	}
	if len(caseRefs) > 0 {
		fmt.Fprintf(&entitySummary, "- case reference values: %s\n", strings.Join(caseRefs, ", "))
	}

	return `You are a legal document classification assistant. Classify the document below into exactly one category:

agreement, affidavit, court_order, financial_statement, correspondence, evidence, pleading, contract, will, power_of_attorney, other

Entity counts already extracted from the document:
` + entitySummary.String() + `
Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object:
{
  "document_type": "",
  "confidence": 0.0,
  "summary": "",
  "key_points": [],
  "requires_review": false
}

- "confidence" is your certainty in the category, between 0.0 and 1.0.
- "summary" is 2-3 sentences describing the document.
- "key_points" lists up to 5 obligations, deadlines, or findings.
- Set "requires_review" to true if the document is ambiguous or partially legible.

Document text:
---
` + text + `
---`
}
