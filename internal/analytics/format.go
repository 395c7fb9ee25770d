package analytics

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a nullable metric with comma grouping and at
// most two decimal places. Nil renders as an em dash placeholder.
func FormatNumber(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "—"
	}
	rounded := math.Round(*v*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	return groupThousands(s)
}

// FormatUSD renders a nullable dollar amount with exactly two decimals.
func FormatUSD(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "—"
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64)
	if strings.HasPrefix(s, "-") {
		return "-$" + groupThousands(s[1:])
	}
	return "$" + groupThousands(s)
}

// FormatInt renders an integer count with comma grouping.
func FormatInt(n int) string {
	return groupThousands(strconv.Itoa(n))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var parts []string
		for len(intPart) > 3 {
			parts = append([]string{intPart[len(intPart)-3:]}, parts...)
			intPart = intPart[:len(intPart)-3]
		}
		parts = append([]string{intPart}, parts...)
		intPart = strings.Join(parts, ",")
	}
	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}
