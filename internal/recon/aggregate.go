package recon

import (
	"dgrhcli/pkg/contracts/domain"
)

// Aggregate sums classified durations per canonical site key, producing
// generator and mains-failure totals. Unclassified rows are excluded.
// Simple associative float64 reduction; absent groups stay zero-valued
// when the summary left-joins these aggregates.
func Aggregate(alarms []domain.ClassifiedAlarm) map[string]domain.SiteAggregate {
	out := make(map[string]domain.SiteAggregate)
	for _, a := range alarms {
		agg := out[a.SiteKey]
		agg.SiteKey = a.SiteKey
		switch a.Type {
		case domain.AlarmTypeGenerator:
			agg.GensetRH += a.DurationHrs
		case domain.AlarmTypeMains:
			agg.MainsFailedHr += a.DurationHrs
		default:
			continue
		}
		out[a.SiteKey] = agg
	}
	return out
}
