package recon

import (
	"regexp"
	"strings"

	"dgrhcli/internal/errors"
)

// DurationDetector selects the column of an alarm table that carries the
// alarm duration in hours. Uploaded files rename this column freely, so
// the default implementation is a ranked-candidate heuristic; an
// exact-schema detector can replace it without touching the pipeline.
type DurationDetector interface {
	// Detect returns the normalized name of the duration column.
	Detect(t *Table) (string, error)
}

// durationKeywords match candidate column names by case-insensitive
// substring.
var durationKeywords = []string{"duration", "dur", "hrs", "hours", "runtime", "run_time", "rh"}

// durationPreferred breaks ties between multiple candidates.
var durationPreferred = regexp.MustCompile(`(?i)duration|duration_hrs|durationhr|dur_hrs`)

// HeuristicDetector is the default DurationDetector: keyword-named columns
// and numeric non-zero columns form the candidate list in first-seen
// order; a single candidate wins outright, ties prefer duration-specific
// names, and an empty list is a schema error.
type HeuristicDetector struct{}

// NewHeuristicDetector returns the default duration-column detector.
func NewHeuristicDetector() *HeuristicDetector {
	return &HeuristicDetector{}
}

// Detect implements DurationDetector.
func (d *HeuristicDetector) Detect(t *Table) (string, error) {
	var candidates []string
	seen := make(map[string]bool)
	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			candidates = append(candidates, col)
		}
	}

	for _, col := range t.Columns {
		lower := strings.ToLower(col)
		for _, kw := range durationKeywords {
			if strings.Contains(lower, kw) {
				add(col)
				break
			}
		}
	}
	for _, col := range t.Columns {
		if t.IsNumericColumn(col) {
			add(col)
		}
	}

	switch len(candidates) {
	case 0:
		return "", errors.NewSchemaError(
			"no duration column detected; include a column named with a duration-related keyword such as 'duration' or 'hrs'")
	case 1:
		return candidates[0], nil
	}
	for _, col := range candidates {
		if durationPreferred.MatchString(col) {
			return col, nil
		}
	}
	return candidates[0], nil
}
