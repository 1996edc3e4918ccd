package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried in order. The ledger uses the Brazilian day-first
// convention, so DD/MM variants come before the ISO fallback.
var dateFormats = []string{
	"02/01/2006", // DD/MM/YYYY
	"2/1/2006",   // D/M/YYYY
	"02/01/06",   // DD/MM/YY
	"2/1/06",     // D/M/YY
	"2006-01-02", // ISO fallback
}

// parseDate parses a ledger date cell. Empty or unparseable cells become
// the zero time rather than an error; nulls propagate silently downstream.
func parseDate(value string) time.Time {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}
	}
	for _, format := range dateFormats {
		if date, err := time.Parse(format, cleaned); err == nil {
			return date
		}
	}
	return time.Time{}
}

// parseAmount parses a currency-formatted amount cell: the currency symbol
// is stripped, the decimal comma becomes a dot and the remainder is parsed
// as a decimal. Empty or unparseable cells become zero; the pipeline does
// not distinguish a missing amount from an explicit zero.
func parseAmount(value, currencySymbol string) decimal.Decimal {
	cleaned := value
	if currencySymbol != "" {
		cleaned = strings.ReplaceAll(cleaned, currencySymbol, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
