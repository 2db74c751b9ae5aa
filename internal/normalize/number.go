package normalize

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal magnitudes beyond these bounds are outside float64 range.
const (
	maxMagnitude = 310
	minMagnitude = -330
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseInt reads the leading integer of s ("12.9" -> 12, "7abc" -> 7).
// Anything without a leading integer, or too large for int64, yields 0.
func ParseInt(s string) int64 {
	d, ok := leadingDecimal(s, intPrefix)
	if !ok {
		return 0
	}
	n := d.BigInt()
	if !n.IsInt64() {
		return 0
	}
	return n.Int64()
}

// ParseFloat reads the leading decimal number of s ("1.5x" -> 1.5).
// Anything without one, or out of float64 range, yields 0.
func ParseFloat(s string) float64 {
	d, ok := leadingDecimal(s, floatPrefix)
	if !ok || !inFloatRange(d) {
		return 0
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func leadingDecimal(s string, re *regexp.Regexp) (decimal.Decimal, bool) {
	m := re.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, false
	}
	neg := strings.HasPrefix(m, "-")
	m = strings.TrimLeft(m, "+-")
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// inFloatRange rejects values whose digits plus exponent put them outside
// float64, before Float64 expands the exponent into a big.Int.
func inFloatRange(d decimal.Decimal) bool {
	mag := int64(d.NumDigits()) + int64(d.Exponent())
	return mag <= maxMagnitude && mag >= minMagnitude
}
