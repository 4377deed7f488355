package classify

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

func TestRuleClassifierKeywords(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		amounts        []string
		wantType       domain.DocumentType
		wantConfidence float64
	}{
		{
			name:           "affidavit keyword",
			text:           "AFFIDAVIT OF JOHN SMITH. I, John Smith, state as follows.",
			wantType:       domain.DocTypeAffidavit,
			wantConfidence: 0.8,
		},
		{
			name:           "sworn statement",
			text:           "This statement was sworn before me on 12 May 2024.",
			wantType:       domain.DocTypeAffidavit,
			wantConfidence: 0.8,
		},
		{
			name:           "court order",
			text:           "IN THE SUPREME COURT OF NSW. THE COURT ORDERS that the application is dismissed.",
			wantType:       domain.DocTypeCourtOrder,
			wantConfidence: 0.7,
		},
		{
			name:           "agreement",
			text:           "This Service Agreement is made between the parties below.",
			wantType:       domain.DocTypeAgreement,
			wantConfidence: 0.7,
		},
		{
			name:           "financial statement from amounts",
			text:           "Opening balance 1000. Closing balance 4000.",
			amounts:        []string{"$1,000", "$2,000", "$4,000"},
			wantType:       domain.DocTypeFinancialStmt,
			wantConfidence: 0.6,
		},
		{
			name:           "no signal",
			text:           "Dear Sir, please find attached the requested material.",
			wantType:       domain.DocTypeOther,
			wantConfidence: 0.3,
		},
	}

	classifier := NewRuleClassifier(domain.DefaultReviewPolicy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := classifier.Classify(context.Background(), port.ClassifyInput{
				Text:    tt.text,
				Amounts: tt.amounts,
			})
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.Equal(t, tt.wantType, out.DocumentType)
			assert.InDelta(t, tt.wantConfidence, out.Confidence, 1e-9)
			assert.Equal(t, "rules", out.Source)
		})
	}
}

func TestRuleClassifierAffidavitWinsOverAgreement(t *testing.T) {
	// Both keywords present; affidavit is the higher-priority rule.
	classifier := NewRuleClassifier(domain.DefaultReviewPolicy())
	out, err := classifier.Classify(context.Background(), port.ClassifyInput{
		Text: "Affidavit sworn in support of the agreement between the parties.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeAffidavit, out.DocumentType)
}

func TestRuleClassifierConfidenceNeverReachesCeiling(t *testing.T) {
	policy := domain.DefaultReviewPolicy()
	classifier := NewRuleClassifier(policy)
	out, err := classifier.Classify(context.Background(), port.ClassifyInput{
		Text: "Affidavit sworn before a court, orders made, agreement attached.",
	})
	require.NoError(t, err)
	assert.Less(t, out.Confidence, policy.RuleConfidenceCeiling)
}

func TestSummarizeTakesOpeningSentences(t *testing.T) {
	text := "This deed records the settlement. The parties release all claims. Costs lie where they fall. Extra sentence past the cutoff."
	summary := Summarize(text)
	assert.Contains(t, summary, "This deed records the settlement.")
	assert.LessOrEqual(t, len(summary), summaryMaxLen+3)
}

func TestSummarizeTruncatesOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("€", 200) + "."
	summary := Summarize(text)
	assert.True(t, utf8.ValidString(summary))
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.LessOrEqual(t, len(summary), summaryMaxLen+3)
}

func TestTruncateRuneBoundary(t *testing.T) {
	assert.Equal(t, "caf...", truncate("café", 4))
	assert.Equal(t, "café", truncate("café", 5))
}

func TestKeyPointsSurfacesObligations(t *testing.T) {
	text := "This is an agreement. The buyer shall pay the deposit by Friday. The weather was sunny. The seller must deliver the goods. Nothing else matters."
	points := KeyPoints(text)
	assert.Len(t, points, 2)
	assert.Contains(t, points[0], "shall pay")
	assert.Contains(t, points[1], "must deliver")
}

func TestKeyPointsCapped(t *testing.T) {
	text := "A shall act. B shall act. C shall act. D shall act. E shall act. F shall act. G shall act."
	points := KeyPoints(text)
	assert.Len(t, points, keyPointMaxCount)
}
