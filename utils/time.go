package utils

import "time"

// NairobiTime returns the current time in Kenya (EAT, UTC+3, no DST).
func NairobiTime() time.Time {
	loc, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		return time.Now().UTC().Add(3 * time.Hour)
	}
	return time.Now().In(loc)
}
