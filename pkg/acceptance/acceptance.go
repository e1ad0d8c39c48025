// Package acceptance implements the local fast-path matcher of the
// negotiation chat: buyer messages that textually confirm an offer and carry
// an explicit dollar amount are detected client-side and never round-trip to
// the remote negotiation function.
package acceptance

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var acceptancePhrases = []string{
	"i accept your offer",
	"i accept the offer",
}

// Matches a dollar amount with optional thousands separators and cents,
// e.g. $1,250.00 or $75.
var amountRegexp = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)

// Match reports whether the given buyer text is an offer acceptance carrying
// an explicit dollar amount, and returns the extracted amount. Texts that
// match an acceptance phrase but carry no amount do not match, so they fall
// through to the remote negotiation call.
func Match(text string) (decimal.Decimal, bool) {
	if !containsAcceptancePhrase(text) {
		return decimal.Zero, false
	}
	return ExtractAmount(text)
}

// ExtractAmount returns the first dollar amount found in the text.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	groups := amountRegexp.FindStringSubmatch(text)
	if groups == nil {
		return decimal.Zero, false
	}
	raw := strings.ReplaceAll(groups[1], ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

func containsAcceptancePhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range acceptancePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
