package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	maxDenominator    = 16
	fractionTolerance = 0.01
)

// FormatQuantity renders q as a whole number, a fraction, or a mixed number
// ("2", "1/3", "1 1/2"). Values with no close fraction fall back to two
// decimals. A nil quantity renders empty.
func FormatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	v := *q
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := math.Floor(v)
	frac := v - whole
	num, den := nearestFraction(frac)
	if math.Abs(frac-float64(num)/float64(den)) > fractionTolerance {
		return sign + trimDecimal(v)
	}
	if num == den {
		whole++
		num = 0
	}

	switch {
	case num == 0:
		return sign + strconv.FormatFloat(whole, 'f', 0, 64)
	case whole == 0:
		return fmt.Sprintf("%s%d/%d", sign, num, den)
	default:
		return fmt.Sprintf("%s%s %d/%d", sign, strconv.FormatFloat(whole, 'f', 0, 64), num, den)
	}
}

// nearestFraction finds the smallest denominator fraction closest to f.
func nearestFraction(f float64) (int, int) {
	bestNum, bestDen := 0, 1
	bestErr := math.Abs(f)
	for den := 2; den <= maxDenominator; den++ {
		num := int(math.Round(f * float64(den)))
		if e := math.Abs(f - float64(num)/float64(den)); e < bestErr-1e-9 {
			bestNum, bestDen, bestErr = num, den, e
		}
	}
	return bestNum, bestDen
}

func trimDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
