// Package casenumber builds the human-readable identifiers assigned to cases.
//
// Format: IMM-<year>-<4 digit random suffix>, e.g. IMM-2026-0042. The suffix
// is drawn uniformly from [0, 9999], so collisions within a year are possible;
// the unique index on cases.case_number rejects them and the creation surfaces
// a conflict the caller may retry.
package casenumber

import (
	"fmt"
	"math/rand"
	"time"
)

// Prefix is the fixed leading segment of every case number.
const Prefix = "IMM"

// Generate returns a case number for the calendar year of now.
func Generate(now time.Time) string {
	return Format(now.Year(), rand.Intn(10000))
}

// Format renders a case number from an explicit year and suffix. Split out of
// Generate so tests can pin the random component.
func Format(year, suffix int) string {
	return fmt.Sprintf("%s-%04d-%04d", Prefix, year, suffix)
}
