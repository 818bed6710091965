package loan

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dobForAge(age int, today time.Time) time.Time {
	// Birthday six months ago, so the age is unambiguous.
	return today.AddDate(-age, -6, 0)
}

func TestAssignLimitBands(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		age int
		max int
	}{
		{21, 5000},
		{25, 25000},
		{40, 50000},
	}
	for _, tc := range cases {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			limit := AssignLimit(dobForAge(tc.age, today), today, rng)
			assert.GreaterOrEqual(t, limit, MinLimit)
			assert.LessOrEqual(t, limit, tc.max)
			assert.Equal(t, 0, limit%100, "limit must be a multiple of 100")
		}
	}
}

func TestAssignLimitDeterministicWithFixedSource(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	dob := dobForAge(25, today)

	a := AssignLimit(dob, today, rand.New(rand.NewSource(7)))
	b := AssignLimit(dob, today, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestAssignLimitBandBoundaries(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))

	// 22 and 27 fall in the middle band, 28 in the top band.
	for i := 0; i < 200; i++ {
		assert.LessOrEqual(t, AssignLimit(dobForAge(22, today), today, rng), 25000)
		assert.LessOrEqual(t, AssignLimit(dobForAge(27, today), today, rng), 25000)
		assert.LessOrEqual(t, AssignLimit(dobForAge(28, today), today, rng), 50000)
	}
}
