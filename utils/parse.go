package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var reDigits = regexp.MustCompile(`[0-9]`)

// ParsePriceISK extracts an integer ISK amount from a legacy free-text price
// field such as "19.990 kr" or "19 990 kr/mán". Every non-digit character is
// stripped; anything without digits parses as 0. This is a compatibility shim
// for legacy product rows only; the pricing engine takes typed integers.
func ParsePriceISK(s string) int64 {
	digits := strings.Join(reDigits.FindAllString(s, -1), "")
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

func ParseInt64Safe(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
