package generation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-maker/internal/types"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// extractYear pulls the first four-digit year out of a free-form date string.
// Returns 0 when no year is present.
func extractYear(date string) int {
	match := yearPattern.FindString(date)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// yearsOfExperience sums the year span of each position. Open-ended
// positions ("Present") count up to the current year. The result is floored
// at 10 so generated titles always read as senior-level.
func yearsOfExperience(history []types.WorkExperience, now time.Time) int {
	total := 0
	for _, exp := range history {
		start := extractYear(exp.StartDate)
		end := now.Year()
		if !strings.EqualFold(strings.TrimSpace(exp.EndDate), "present") {
			end = extractYear(exp.EndDate)
		}
		if start > 0 && end > 0 {
			total += end - start
		}
	}
	if total < 10 {
		return 10
	}
	return total
}

// yearsAtCompany estimates the tenure of a single position, defaulting to 3
// when dates are unparseable.
func yearsAtCompany(exp types.WorkExperience, now time.Time) int {
	start := extractYear(exp.StartDate)
	end := now.Year()
	if !strings.EqualFold(strings.TrimSpace(exp.EndDate), "present") {
		end = extractYear(exp.EndDate)
	}
	if start == 0 || end == 0 {
		return 3
	}
	if end-start < 1 {
		return 1
	}
	return end - start
}
