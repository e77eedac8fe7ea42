package render

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is used for every printed date
const DateLayout = "02 Jan 2006"

// Money formats an amount with two decimals and Indian digit grouping,
// e.g. 1234567.5 -> 12,34,567.50
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + groupIndian(whole) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// Grouped prints v as a whole number with Indian digit grouping
func Grouped(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + groupIndian(s)
}

// Number prints a quantity without trailing zeros
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent prints a rate such as 18 or 8.9 with a percent sign
func Percent(v float64) string {
	return Number(v) + "%"
}

// Date prints t in DateLayout, or an empty string for the zero time
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
