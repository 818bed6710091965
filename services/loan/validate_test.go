package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNationalID(t *testing.T) {
	assert.True(t, IsValidNationalID("1234567"))
	assert.True(t, IsValidNationalID("12345678"))
	assert.False(t, IsValidNationalID("123456"))
	assert.False(t, IsValidNationalID("123456789"))
	assert.False(t, IsValidNationalID("1234567a"))
	assert.False(t, IsValidNationalID(""))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0712345678"))
	assert.False(t, IsValidPhone("071234567"))
	assert.False(t, IsValidPhone("07123456789"))
	assert.False(t, IsValidPhone("07123456Ab"))
}

func TestIsValidPIN(t *testing.T) {
	assert.True(t, IsValidPIN("1234"))
	assert.True(t, IsValidPIN("123456"))
	assert.False(t, IsValidPIN("123"))
	assert.False(t, IsValidPIN("1234567"))
	assert.False(t, IsValidPIN("12a4"))
}

func TestIsValidTransactionCode(t *testing.T) {
	assert.True(t, IsValidTransactionCode("TAB123XYZ9"))
	assert.True(t, IsValidTransactionCode("T123456789"))
	assert.False(t, IsValidTransactionCode("tab123xyz9"))
	assert.False(t, IsValidTransactionCode("T1234"))
	assert.False(t, IsValidTransactionCode("XAB123456Y"))
	assert.False(t, IsValidTransactionCode("TAB123XYZ90"))
}

func TestComputeAge(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// Birthday already passed this year
	assert.Equal(t, 25, ComputeAge(time.Date(1999, 3, 10, 0, 0, 0, 0, time.UTC), today))
	// Birthday later this year
	assert.Equal(t, 24, ComputeAge(time.Date(1999, 9, 10, 0, 0, 0, 0, time.UTC), today))
	// Birthday today
	assert.Equal(t, 25, ComputeAge(time.Date(1999, 6, 15, 0, 0, 0, 0, time.UTC), today))
	// Birthday tomorrow
	assert.Equal(t, 24, ComputeAge(time.Date(1999, 6, 16, 0, 0, 0, 0, time.UTC), today))
}

func TestIsAdultMatchesComputeAge(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for year := 1990; year <= 2010; year++ {
		for _, month := range []time.Month{time.January, time.June, time.December} {
			dob := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, ComputeAge(dob, today) >= 18, IsAdult(dob, today))
		}
	}
}

func TestFilterDigits(t *testing.T) {
	assert.Equal(t, "0712345678", FilterDigits("07 1234-5678", 10))
	assert.Equal(t, "12345678", FilterDigits("123456789", 8))
	assert.Equal(t, "1234", FilterDigits("1a2b3c4d", 6))
	assert.Equal(t, "", FilterDigits("abc", 6))
}
