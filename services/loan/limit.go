package loan

import (
	"math/rand"
	"time"
)

const MinLimit = 1500

// maxLimitForAge returns the ceiling of the credit band for the borrower's age.
func maxLimitForAge(age int) int {
	switch {
	case age < 22:
		return 5000
	case age <= 27:
		return 25000
	default:
		return 50000
	}
}

// AssignLimit draws the approved credit limit for a new application.
// The draw is uniform in [MinLimit, bandMax] from the supplied source and
// rounded up to the next multiple of 100. Callers must only invoke this for
// adult applicants; the limit is assigned once per application.
func AssignLimit(dob, today time.Time, rng *rand.Rand) int {
	max := maxLimitForAge(ComputeAge(dob, today))
	v := MinLimit + rng.Intn(max-MinLimit+1)
	return ((v + 99) / 100) * 100
}
