// Package formatting converts byte sizes between counts and human-readable
// strings using base-1024 units.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with the largest unit that keeps the value at or
// above one. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if n < 1024 && n > -1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	f := float64(n)
	i := 0
	for math.Abs(f) >= 1024 && i < len(units)-1 {
		f /= 1024
		i++
	}

	return strconv.FormatFloat(f, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes such as "10MB", "512 kb", or "2048". A bare number
// is bytes. Units are case-insensitive and a trailing "iB" spelling ("MiB")
// is accepted.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})

	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	if unit == "" {
		return int64(value), nil
	}

	unit = strings.Replace(strings.ToUpper(unit), "IB", "B", 1)
	for i, u := range units {
		if u == unit {
			return int64(value * math.Pow(1024, float64(i))), nil
		}
	}

	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}
