package price

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the display prefix of formatted prices.
const Currency = "Rs."

var printer = message.NewPrinter(language.English)

// Parse extracts an integer price from its textual representation.
// Every non-digit character is dropped before parsing, so separators and currency
// symbols are ignored, but so is the decimal point: "345.50" becomes 34550.
// Callers rely on whole-rupee values, so this is kept as is.
// Returns 0 when nothing parseable is left.
func Parse(text string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)

	if digits == "" {
		return 0
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}

	return value
}

// ParseDecimal extracts whole-rupee price from scraped store text honouring the decimal point,
// e.g. "Rs. 1,299.99" becomes 1299. Currency prefixes ending with a dot are ignored.
// Returns 0 when nothing parseable is left.
func ParseDecimal(text string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)

	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value > math.MaxInt64 {
		return 0
	}

	return int64(value)
}

// Format renders price as display text, e.g. "Rs. 345,000".
func Format(p int64) string {
	return Currency + " " + Group(p)
}

// Group returns p with thousands separators.
func Group(p int64) string {
	return printer.Sprintf("%d", p)
}
