package recon

import (
	"math"
	"sort"

	"dgrhcli/pkg/contracts/domain"
)

// matchingToleranceHrs / matchingTolerancePct bound the claimed-vs-logged
// discrepancy under which a site still counts as matching. Either arm
// passing is enough.
const (
	matchingToleranceHrs = 5.0
	matchingTolerancePct = 5.0
)

const isoDateLayout = "2006-01-02"

// Round2 rounds to two decimal places, the reporting precision for all
// percentage fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HighRHDatesBySite collects, per canonical site key, the distinct ISO
// dates on which a high run-hour generator alarm fired. Dates sort
// ascending so repeated runs emit identical lists. Rows with missing
// timestamps contribute nothing.
func HighRHDatesBySite(alarms []domain.ClassifiedAlarm) map[string][]string {
	seen := make(map[string]map[string]bool)
	for _, a := range alarms {
		if !a.HighRunHour || !a.HasTimestamp() {
			continue
		}
		if seen[a.SiteKey] == nil {
			seen[a.SiteKey] = make(map[string]bool)
		}
		seen[a.SiteKey][a.RaisedAt.Format(isoDateLayout)] = true
	}

	out := make(map[string][]string, len(seen))
	for key, dates := range seen {
		list := make([]string, 0, len(dates))
		for d := range dates {
			list = append(list, d)
		}
		sort.Strings(list)
		out[key] = list
	}
	return out
}

// BuildSummary left-joins the per-site aggregates onto the deduplicated
// reference and derives every reported metric. Reference sites with no
// surviving alarms appear with zeroed hours; alarm sites absent from the
// reference were already dropped by the window join.
func BuildSummary(refs []domain.RefuellingRecord, aggs map[string]domain.SiteAggregate, alarms []domain.ClassifiedAlarm) []domain.SiteSummary {
	highDates := HighRHDatesBySite(alarms)

	out := make([]domain.SiteSummary, 0, len(refs))
	for _, ref := range refs {
		agg := aggs[ref.SiteKey]
		s := domain.SiteSummary{
			RefuellingRecord: ref,
			GensetRH:         agg.GensetRH,
			MainsFailedHr:    agg.MainsFailedHr,
			HighRHDates:      highDates[ref.SiteKey],
		}

		s.ActualMainsFailedHr = s.MainsFailedHr + s.GensetRH

		if ref.TotalAvailableHr > 0 {
			pct := (1 - s.ActualMainsFailedHr/ref.TotalAvailableHr) * 100
			s.GridAvailabilityPct = math.Min(100, math.Max(0, pct))
		}

		s.RHDifference = ref.ClaimedRH - s.GensetRH
		if ref.ClaimedRH != 0 {
			s.PctOfRHDifference = s.RHDifference / ref.ClaimedRH * 100
			s.PctValid = true
		}

		s.MatchingRH = domain.MatchingNo
		if (s.PctValid && math.Abs(s.PctOfRHDifference) <= matchingTolerancePct) ||
			math.Abs(s.RHDifference) <= matchingToleranceHrs {
			s.MatchingRH = domain.MatchingYes
		}

		if s.MatchingRH == domain.MatchingNo {
			if ref.ClaimedRH > s.GensetRH {
				s.CategoryOfAlarm = domain.CategoryAlarmNotTrigger
			} else {
				s.CategoryOfAlarm = domain.CategoryFalseAlarmTrigger
			}
		}

		if len(s.HighRHDates) > 0 {
			switch s.MatchingRH {
			case domain.MatchingNo:
				s.Justification = domain.JustificationFalseAlarm
			case domain.MatchingYes:
				s.Justification = domain.JustificationContinuedHighRH
			}
		}

		out = append(out, s)
	}
	return out
}
