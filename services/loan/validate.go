package loan

import (
	"regexp"
	"strings"
	"time"
)

var (
	reNationalID      = regexp.MustCompile(`^[0-9]{7,8}$`)
	rePhone           = regexp.MustCompile(`^[0-9]{10}$`)
	rePIN             = regexp.MustCompile(`^[0-9]{4,6}$`)
	reTransactionCode = regexp.MustCompile(`^T[A-Z0-9]{9}$`)
)

func IsValidNationalID(s string) bool {
	return reNationalID.MatchString(s)
}

func IsValidPhone(s string) bool {
	return rePhone.MatchString(s)
}

func IsValidPIN(s string) bool {
	return rePIN.MatchString(s)
}

// IsValidTransactionCode checks an M-Pesa style confirmation code:
// 10 characters, uppercase letters/digits, always starting with T.
func IsValidTransactionCode(s string) bool {
	return reTransactionCode.MatchString(s)
}

// ComputeAge returns age in whole years at the reference date.
func ComputeAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func IsAdult(dob, today time.Time) bool {
	return ComputeAge(dob, today) >= 18
}

// FilterDigits strips non-digit characters and caps the length.
// Used at the edit boundary for ID/phone/PIN fields while the user types.
func FilterDigits(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() >= maxLen {
			break
		}
	}
	return b.String()
}
