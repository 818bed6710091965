package utils

import (
	"fmt"
	"strings"
)

// FormatKES formats an integer amount like "KES 12,500".
func FormatKES(value int) string {
	s := fmt.Sprintf("%d", value)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	cnt := 0
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteByte(s[i])
		cnt++
		if cnt%3 == 0 && i != 0 {
			b.WriteByte(',')
		}
	}
	runes := []rune(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	out := string(runes)
	if neg {
		out = "-" + out
	}
	return "KES " + out
}
