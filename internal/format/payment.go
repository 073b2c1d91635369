package format

import "strings"

var paymentTermPhrases = map[string]string{
	"net-15":         "Net 15 days",
	"net-30":         "Net 30 days",
	"net-45":         "Net 45 days",
	"due-on-receipt": "due on receipt",
	"50-50":          "50% upfront, 50% on completion",
	"monthly":        "monthly",
	"milestone":      "milestone-based",
}

// PaymentTermsPhrase maps a payment term code to the phrase used in the
// "All invoices are ..." sentence. Unknown values are custom text and pass
// through unchanged.
func PaymentTermsPhrase(code string) string {
	if p, ok := paymentTermPhrases[code]; ok {
		return p
	}
	return code
}

// PaymentStructureLabel renders a payment structure with hyphens as spaces.
func PaymentStructureLabel(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}

// DefaultLatePaymentSentence follows the payment terms when no late fee
// policy is set.
const DefaultLatePaymentSentence = "Late payments may incur interest charges at a rate of 1.5% per month."
