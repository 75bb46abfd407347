package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ignorePrefixes marks lines that are receipt boilerplate rather than items.
// A line whose uppercased form starts with one of these contributes neither
// a name nor a price.
var ignorePrefixes = []string{
	"ORDER",
	"SUBTOTAL",
	"TOTAL",
	"TAX",
	"BALANCE",
	"HOST",
	"VISA",
	"CASH",
	"CHANGE",
}

// priceLine matches a line that is entirely a monetary amount: an optional
// currency symbol, digits with optional thousands grouping, and up to two
// fraction digits. A line merely containing an amount does not match.
var priceLine = regexp.MustCompile(`^(?:A?\$|€|£)?[0-9]+(?:,[0-9]{3})*(?:\.[0-9]{1,2})?$`)

// ParseLines extracts line items from OCR output, one visual line per entry
// in top-to-bottom reading order.
//
// OCR tends to place an item's name and its price on separate lines, so a
// line that is entirely a price is paired with the line immediately above it
// as the item name. Boilerplate lines (totals, card slips, host names) are
// skipped outright and can never serve as item names. ParseLines never fails;
// input it cannot make sense of simply yields fewer items.
func ParseLines(lines []string) Receipt {
	var rec Receipt

	skipped := make([]bool, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		skipped[i] = isBoilerplate(trimmed)
		if rec.DateLine == "" && strings.Contains(strings.ToLower(trimmed), "date") {
			rec.DateLine = trimmed
		}
	}

	for i, line := range lines {
		if skipped[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !priceLine.MatchString(trimmed) {
			continue
		}
		// A leading price has no name line to pair with, and a skipped
		// line above cannot provide one. A preceding price line, however,
		// is used as-is: correcting that would require understanding the
		// receipt layout, which OCR already failed to preserve.
		if i == 0 || skipped[i-1] {
			continue
		}
		name := strings.TrimSpace(lines[i-1])
		if name == "" {
			continue
		}
		price, ok := parseAmount(trimmed)
		if !ok {
			continue
		}
		rec.Items = append(rec.Items, LineItem{
			Name:      name,
			UnitPrice: price,
			Quantity:  1,
		})
	}

	return rec
}

func isBoilerplate(line string) bool {
	upper := strings.ToUpper(line)
	for _, prefix := range ignorePrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// parseAmount converts a matched price line to a decimal value.
// Returns false for anything that fails to parse cleanly; the caller drops
// the line silently.
func parseAmount(line string) (decimal.Decimal, bool) {
	cleaned := strings.TrimLeft(line, "A$€£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, false
	}
	return amount, true
}
