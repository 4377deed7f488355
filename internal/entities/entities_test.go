package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numeric separators",
			text: "Signed on 12/05/2024 and witnessed 3-11-23, filed 01.02.2024.",
			want: []string{"01.02.2024", "12/05/2024", "3-11-23"},
		},
		{
			name: "day month year",
			text: "Hearing listed for 14 March 2024 before the registrar.",
			want: []string{"14 March 2024"},
		},
		{
			name: "month day year",
			text: "Executed March 14, 2024 in Sydney.",
			want: []string{"March 14, 2024"},
		},
		{
			name: "no dates",
			text: "No temporal references here.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.want, got[ClassDates])
		})
	}
}

func TestExtractAmounts(t *testing.T) {
	got := Extract("Deposit of $1,500.00 plus AUD 300 and a further 250 dollars payable.")
	assert.Equal(t, []string{"$1,500.00", "250 dollars", "AUD 300"}, got[ClassAmounts])
}

func TestExtractEmails(t *testing.T) {
	got := Extract("Serve notices to legal@firm.com.au and to counsel+matters@example.org.")
	assert.Equal(t, []string{"counsel+matters@example.org", "legal@firm.com.au"}, got[ClassEmails])
}

func TestExtractPhones(t *testing.T) {
	got := Extract("Call 0298765432 or mobile 0412345678, international +61 298765432.")
	assert.Equal(t, []string{"+61 298765432", "0298765432", "0412345678"}, got[ClassPhones])
}

func TestExtractCaseReferences(t *testing.T) {
	got := Extract("See NSW 2024 123 and the appeal 2024 NSWCA 45.")
	assert.Contains(t, got[ClassCaseRefs], "NSW 2024 123")
	assert.Contains(t, got[ClassCaseRefs], "2024 NSWCA 45")
}

func TestExtractDeduplicates(t *testing.T) {
	got := Extract("Due 12/05/2024. Reminder: due 12/05/2024.")
	assert.Equal(t, []string{"12/05/2024"}, got[ClassDates])
}

func TestExtractIdempotent(t *testing.T) {
	text := "Pay $500 by 01/07/2024, contact ops@firm.com, ref 2024 FCA 9."
	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first, second)
}

func TestExtractAllClassesPresent(t *testing.T) {
	got := Extract("")
	for _, class := range Classes {
		values, ok := got[class]
		assert.True(t, ok, "missing class %s", class)
		assert.Empty(t, values)
	}
}

func TestCounts(t *testing.T) {
	ents := Extract("Pay $500 and $600 by 01/07/2024.")
	counts := Counts(ents)
	assert.Equal(t, 2, counts[ClassAmounts])
	assert.Equal(t, 1, counts[ClassDates])
	assert.Equal(t, 0, counts[ClassEmails])
}
