package utils

import (
	"testing"
	"time"
)

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Year subtraction only: the June birthday has not happened yet on
	// January 1st, and the result is still 25.
	if got := AgeFromDOB("2000-06-15", now); got != 25 {
		t.Errorf("expected age 25 for 2000-06-15, got %d", got)
	}

	if got := AgeFromDOB("1996-01-20", now); got != 29 {
		t.Errorf("expected age 29 for 1996-01-20, got %d", got)
	}
}

func TestAgeFromDOBInvalid(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, dob := range []string{"", "not-a-date", "15/06/2000", "3000-01-01"} {
		if got := AgeFromDOB(dob, now); got != 0 {
			t.Errorf("expected age 0 for %q, got %d", dob, got)
		}
	}
}
