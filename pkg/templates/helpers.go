package templates

import (
	"strconv"
	"strings"
)

// FormatMoney renders a dollar amount with thousands separators, e.g.
// 1234567.5 -> "$1,234,567.50".
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)

	intPart := parts[0]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + parts[1]
	if negative {
		return "-" + out
	}
	return out
}

// FormatPercent renders a percentage with at most two decimal places.
func FormatPercent(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}

// JoinInts renders an integer list as comma-separated text, e.g. "5, 8, 12".
func JoinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Titlecase uppercases the first letter of a word.
func Titlecase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// OrDefault substitutes fallback text when the value is empty.
func OrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// builtins are the functions available inside every template.
func builtins() map[string]any {
	return map[string]any{
		"money":    FormatMoney,
		"percent":  FormatPercent,
		"joinInts": JoinInts,
		"title":    Titlecase,
		"default":  OrDefault,
	}
}
