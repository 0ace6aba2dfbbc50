package extract

import "testing"

func TestFromTextPullsAllFields(t *testing.T) {
	text := "Auto Insurance Certificate\n" +
		"Policy #: 99887-XYZ\n" +
		"Provider: Acme Mutual Co.\n" +
		"Premium: $142.50\n" +
		"Due Date: 01/15/2026"

	f := FromText(text)

	if got := deref(f.InsuranceType); got != "Auto" {
		t.Fatalf("insurance type: got %q, want Auto", got)
	}
	if got := deref(f.PolicyNumber); got != "99887-XYZ" {
		t.Fatalf("policy number: got %q, want 99887-XYZ", got)
	}
	if got := deref(f.Provider); got != "Acme Mutual" {
		t.Fatalf("provider: got %q, want Acme Mutual", got)
	}
	if got := deref(f.Premium); got != "142.50" {
		t.Fatalf("premium: got %q, want 142.50", got)
	}
	if got := deref(f.DueDate); got != "01/15/2026" {
		t.Fatalf("due date: got %q, want 01/15/2026", got)
	}
}

func TestFromTextPremiumStripsCurrencySymbol(t *testing.T) {
	f := FromText("Annual premium: €1,200")
	if got := deref(f.Premium); got != "1,200" {
		t.Fatalf("premium: got %q, want 1,200", got)
	}
}

func TestFromTextWrittenDueDate(t *testing.T) {
	f := FromText("Home insurance renewal notice. Renewal Date: March 15, 2026")
	if got := deref(f.InsuranceType); got != "Home" {
		t.Fatalf("insurance type: got %q, want Home", got)
	}
	if got := deref(f.DueDate); got != "March 15, 2026" {
		t.Fatalf("due date: got %q, want March 15, 2026", got)
	}
}

func TestFromTextFirstVocabularyHitWins(t *testing.T) {
	// "Carrier" contains "car"; the keyword scan matches inside words.
	f := FromText("Carrier: Sunrise Mutual Company")
	if got := deref(f.InsuranceType); got != "Car" {
		t.Fatalf("insurance type: got %q, want Car", got)
	}
	if got := deref(f.Provider); got != "Sunrise Mutual" {
		t.Fatalf("provider: got %q, want Sunrise Mutual", got)
	}
}

func TestFromTextNoSanityChecks(t *testing.T) {
	// Extracted values pass through as-is, even when implausible.
	f := FromText("Payment: 0 due date: 01/01/1990")
	if got := deref(f.Premium); got != "0" {
		t.Fatalf("premium: got %q, want 0", got)
	}
	if got := deref(f.DueDate); got != "01/01/1990" {
		t.Fatalf("due date: got %q, want 01/01/1990", got)
	}
}

func TestFromTextUnmatchedYieldsNils(t *testing.T) {
	f := FromText("quarterly newsletter, nothing to see here")
	if f.InsuranceType != nil || f.PolicyNumber != nil || f.Provider != nil || f.Premium != nil || f.DueDate != nil {
		t.Fatalf("expected all fields nil, got %+v", f)
	}
}

func TestFromPDFUnreadableYieldsZeroFields(t *testing.T) {
	f := FromPDF([]byte("definitely not a pdf"))
	if f != (Fields{}) {
		t.Fatalf("expected zero fields, got %+v", f)
	}
}

func TestTextRejectsGarbage(t *testing.T) {
	if _, err := Text([]byte{0x00, 0x01, 0x02}); err == nil {
		t.Fatalf("expected error for non-PDF bytes")
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
