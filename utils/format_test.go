package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKES(t *testing.T) {
	assert.Equal(t, "KES 500", FormatKES(500))
	assert.Equal(t, "KES 6,750", FormatKES(6750))
	assert.Equal(t, "KES 50,000", FormatKES(50000))
	assert.Equal(t, "KES 1,234,567", FormatKES(1234567))
	assert.Equal(t, "KES -1,500", FormatKES(-1500))
	assert.Equal(t, "KES 0", FormatKES(0))
}

func TestExtractFirstFloat(t *testing.T) {
	assert.Equal(t, 13.5, ExtractFirstFloat("13.5% p.a."))
	assert.Equal(t, 14.2, ExtractFirstFloat("from 14,2%"))
	assert.Equal(t, 0.0, ExtractFirstFloat("n/a"))
}

func TestExtractMaxAmount(t *testing.T) {
	assert.Equal(t, int64(1000000), ExtractMaxAmount("KES 500 - KES 1,000,000"))
	assert.Equal(t, int64(50000), ExtractMaxAmount("up to KES 50,000"))
	assert.Equal(t, int64(0), ExtractMaxAmount("unspecified"))
}
