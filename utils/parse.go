package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var reNum = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)`)

func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ExtractFirstFloat pulls the first numeric value out of scraped text like
// "13.5% p.a." or "from 14,2%".
func ExtractFirstFloat(s string) float64 {
	m := reNum.FindStringSubmatch(strings.ReplaceAll(s, ",", "."))
	if len(m) > 1 {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	return 0
}

// ExtractMaxAmount returns the largest amount found in a scraped string,
// e.g. "KES 500 - KES 1,000,000" -> 1000000.
func ExtractMaxAmount(s string) int64 {
	clean := strings.ReplaceAll(s, " ", " ")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	nums := reNum.FindAllString(clean, -1)
	var max int64
	for _, t := range nums {
		t = strings.SplitN(t, ".", 2)[0]
		v, err := strconv.ParseInt(t, 10, 64)
		if err == nil && v > max {
			max = v
		}
	}
	return max
}
