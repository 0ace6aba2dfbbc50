package extract

import (
	"regexp"
	"strings"

	"vault-backend/internal/shared/telemetry"
)

// Fields holds the structured values pulled out of an insurance document.
// Every field is independently nullable: extraction is best-effort
// enrichment and a document with none of them is still valid.
type Fields struct {
	InsuranceType *string `json:"insuranceType"`
	PolicyNumber  *string `json:"policyNumber"`
	Provider      *string `json:"provider"`
	Premium       *string `json:"premium"`
	DueDate       *string `json:"dueDate"`
}

// insuranceVocabulary is scanned in order; first hit wins.
var insuranceVocabulary = []string{
	"health", "auto", "car", "life", "home", "property", "general", "liability",
}

var (
	policyNumberRe = regexp.MustCompile(`(?i)policy\s*(?:#|number|no|num)?[:.\s]*([a-zA-Z0-9-]{5,20})`)
	providerRe     = regexp.MustCompile(`(?i)(?:provided by|issued by|insurer|carrier|provider|company)[:.\s]*([A-Za-z\s&]+?)(?:[.,]|\s(?:Inc|LLC|Ltd|Co|Corporation|Company)|\s{2}|$)`)
	premiumRe      = regexp.MustCompile(`(?i)(?:premium|payment|cost)[:.\s]*[$€£]?\s*([0-9,.]+)`)
	dueDateRe      = regexp.MustCompile(`(?i)(?:due date|payment due|expiration date|expiry date|renewal date)[:.\s]*([A-Za-z0-9\s,]+?\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|[A-Za-z]+\s+\d{1,2},?\s+\d{4})`)
)

// FromPDF extracts fields from raw PDF bytes. It never fails the caller:
// unreadable content yields a zero Fields value and a log line.
func FromPDF(data []byte) Fields {
	text, err := Text(data)
	if err != nil {
		telemetry.Error("extract.pdf_unreadable", map[string]any{"err": err.Error()})
		return Fields{}
	}
	return FromText(text)
}

// FromText applies the field rules to already-extracted text. Each rule is
// independent; first match in document order wins. Extracted values are not
// sanity-checked: a premium of "0" or a past due date pass through as-is.
func FromText(text string) Fields {
	var f Fields

	lower := strings.ToLower(text)
	for _, kind := range insuranceVocabulary {
		if strings.Contains(lower, kind) {
			f.InsuranceType = ptr(titleCase(kind))
			break
		}
	}

	if m := policyNumberRe.FindStringSubmatch(text); len(m) > 1 {
		f.PolicyNumber = ptr(strings.TrimSpace(m[1]))
	}
	if m := providerRe.FindStringSubmatch(text); len(m) > 1 {
		if v := strings.TrimSpace(m[1]); v != "" {
			f.Provider = ptr(v)
		}
	}
	if m := premiumRe.FindStringSubmatch(text); len(m) > 1 {
		f.Premium = ptr(strings.TrimSpace(m[1]))
	}
	if m := dueDateRe.FindStringSubmatch(text); len(m) > 1 {
		f.DueDate = ptr(strings.TrimSpace(m[1]))
	}

	return f
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ptr(s string) *string { return &s }
