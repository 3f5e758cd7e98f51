package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatISK formats an integer ISK amount like "19.990 kr." with Icelandic
// thousands grouping.
func FormatISK(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var b strings.Builder
	cnt := 0
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteByte(s[i])
		cnt++
		if cnt%3 == 0 && i != 0 {
			b.WriteByte('.')
		}
	}
	runes := []rune(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	out := string(runes) + " kr."
	if neg {
		out = "-" + out
	}
	return out
}

var icelandicMonths = [...]string{
	"janúar", "febrúar", "mars", "apríl", "maí", "júní",
	"júlí", "ágúst", "september", "október", "nóvember", "desember",
}

// FormatDateIS renders a date the way the site shows it: "31. ágúst 2026".
func FormatDateIS(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), icelandicMonths[t.Month()-1], t.Year())
}
