// Package money holds the peso arithmetic helpers shared by the draft builder,
// the transaction store and the receipt renderers.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the Philippine peso sign.
const Symbol = "₱"

// Places kept for stored quantities and peso amounts.
const (
	QuantityPlaces = 3
	AmountPlaces   = 2
)

// Input bounds. Longer text, exponents outside ±maxExponent and magnitudes
// above MaxAmount parse as zero.
const (
	maxInputLen = 32
	maxExponent = 12
)

var (
	// PaidTolerance is the largest balance still treated as fully paid.
	PaidTolerance = decimal.RequireFromString("0.001")

	// MaxAmount is the largest amount a stored peso column holds.
	MaxAmount = decimal.RequireFromString("9999999999.99")

	// MaxQuantity is the largest quantity a stored line holds.
	MaxQuantity = decimal.RequireFromString("999999999.999")

	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func init() {
	// Wire amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Parse coerces user-typed text into a decimal. Blank, unparsable or out of
// range input is zero; a leading peso sign and grouping commas are tolerated.
// Results never exceed MaxAmount in magnitude.
func Parse(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	// checked before any comparison: rescaling a huge exponent is unbounded work
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero
	}
	return d
}

// HasPlaces reports whether d needs no more than places decimal places.
func HasPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// Grouped formats an amount with thousands separators and two decimals,
// e.g. 1234.5 -> "1,234.50". The digits come from the decimal itself, so
// large amounts keep every centavo.
func Grouped(d decimal.Decimal) string {
	fixed := d.StringFixed(AmountPlaces)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped string
	if n := decimal.RequireFromString(whole); n.LessThanOrEqual(maxInt64) {
		grouped = message.NewPrinter(language.English).Sprintf("%d", n.IntPart())
	} else {
		grouped = groupDigits(whole)
	}
	return sign + grouped + "." + frac
}

// groupDigits inserts commas every three digits from the right.
func groupDigits(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Peso formats an amount for display, e.g. 1234.5 -> "₱1,234.50".
func Peso(d decimal.Decimal) string {
	return Symbol + Grouped(d)
}

// Plain formats an amount with two decimals and no grouping, suitable for
// prefilling an input field.
func Plain(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsSettled reports whether a balance counts as fully paid.
func IsSettled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(PaidTolerance)
}

// Input is a leniently decoded numeric field. It accepts a JSON number, a
// JSON string or null and keeps the raw text; Parse turns it into an amount.
type Input string

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*in = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*in = Input(str)
	default:
		*in = Input(s)
	}
	return nil
}

// Decimal parses the raw text with Parse.
func (in Input) Decimal() decimal.Decimal {
	return Parse(string(in))
}
