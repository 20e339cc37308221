// Package overrides applies objective, deterministic fact-based corrections
// to specific requirement classifications and recomputes bucket membership
// after any mutation.
package overrides

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	degreePattern = regexp.MustCompile(`(?i)\b(bachelor|b\.?s\.?|b\.?a\.?)\b`)
	yearPattern   = regexp.MustCompile(`\b(19[7-9]\d|20[0-2]\d)\b`)
)

// HasBachelors reports whether the resume text objectively evidences a
// bachelor-level degree: a degree keyword plus a university or college
// mention.
func HasBachelors(resumeText string) bool {
	if !degreePattern.MatchString(resumeText) {
		return false
	}
	low := strings.ToLower(resumeText)
	return strings.Contains(low, "university") || strings.Contains(low, "college")
}

// YearsExperience infers a career span as the difference between the latest
// and earliest plausible 4-digit years (1970-2029) in the resume text. It
// returns nil when fewer than two distinct years are found.
func YearsExperience(resumeText string) *int {
	matches := yearPattern.FindAllString(resumeText, -1)

	distinct := make(map[int]struct{}, len(matches))
	minYear, maxYear := 0, 0
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		distinct[y] = struct{}{}
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if len(distinct) < 2 {
		return nil
	}

	span := maxYear - minYear
	return &span
}
