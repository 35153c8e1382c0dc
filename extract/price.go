package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// priceNumber matches the first digit run of a price, allowing grouping
// spaces (regular and non-breaking), apostrophes, commas and dots.
var priceNumber = regexp.MustCompile(`\d[\d \x{00a0}\x{202f}'.,]*`)

// ParsePrice extracts a numeric amount from free price text as shown on
// Tunisian listing pages ("1 234,50 DT", "99DT", "1,250.000 TND", "45 €").
// Currency tokens are ignored; only the first number is read.
//
// Separator disambiguation: when both comma and dot appear, the one that
// occurs last is the decimal separator and the other marks thousands.
// A lone comma is a decimal separator only when at most two digits follow
// it, otherwise it groups thousands. A lone dot is read as a decimal
// point, except repeated dots which group thousands.
//
// The boolean is false when no parseable number is present.
func ParsePrice(raw string) (float64, bool) {
	match := priceNumber.FindString(raw)
	if match == "" {
		return 0, false
	}

	s := strings.NewReplacer(" ", "", " ", "", " ", "", "'", "").Replace(match)
	s = strings.Trim(s, ".,")

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// 1.234,50 — dot groups thousands
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.50 — comma groups thousands
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 <= 2 {
			// decimal comma: 123,45
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// thousands: 1,234 or 1,234,567
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// PriceOf wraps ParsePrice in a typed Result: empty text is Missing,
// non-empty unparseable text is ParseError with the original text kept
// in Raw for the cleaning stats.
func PriceOf(raw string) (float64, Result) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, Result{Outcome: Missing}
	}
	value, ok := ParsePrice(trimmed)
	if !ok {
		return 0, Result{Outcome: ParseError, Raw: raw}
	}
	return value, Result{Outcome: Found, Value: trimmed}
}
