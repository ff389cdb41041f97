package utils

import (
	"strconv"
	"strings"
	"time"
)

// AgeFromDOB derives an age from a "YYYY-MM-DD" date of birth as
// currentYear - birthYear. The day and month are not consulted, so the
// result is off by one before the birthday; the request screens only need
// the rough figure. Returns 0 when the year cannot be parsed.
func AgeFromDOB(dob string, now time.Time) int {
	year, _, _ := strings.Cut(dob, "-")
	birthYear, err := strconv.Atoi(year)
	if err != nil || birthYear <= 0 {
		return 0
	}
	age := now.Year() - birthYear
	if age < 0 {
		return 0
	}
	return age
}
