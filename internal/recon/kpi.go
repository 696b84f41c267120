package recon

import (
	"dgrhcli/pkg/contracts/domain"
)

// avgDGRHThreshold flags sites whose claimed run hours average more than
// this many hours per day across the refuelling window.
const avgDGRHThreshold = 2.0

// KPI subset names. Each roll-up keeps the summary rows that produced it
// so operators can download the backing slice.
const (
	SubsetClaimedMatch      = "claimed_match"
	SubsetAlarmNotTrigger   = "alarm_not_trigger"
	SubsetFalseAlarmTrigger = "false_alarm_trigger"
	SubsetContinuedHighRH   = "continued_high_rh"
	SubsetAvgDGRHAbove2     = "avg_dgrh_above_2"
)

// SubsetNames lists the KPI subsets in report order.
var SubsetNames = []string{
	SubsetClaimedMatch,
	SubsetAlarmNotTrigger,
	SubsetFalseAlarmTrigger,
	SubsetContinuedHighRH,
	SubsetAvgDGRHAbove2,
}

// BuildKPIs rolls the summary table up into the fleet report and returns
// the per-KPI summary subsets alongside it. Percentages are over total
// sites, rounded to two decimals, zero when the summary is empty.
func BuildKPIs(summary []domain.SiteSummary) (domain.KPIReport, map[string][]domain.SiteSummary) {
	subsets := map[string][]domain.SiteSummary{
		SubsetClaimedMatch:      {},
		SubsetAlarmNotTrigger:   {},
		SubsetFalseAlarmTrigger: {},
		SubsetContinuedHighRH:   {},
		SubsetAvgDGRHAbove2:     {},
	}

	for _, s := range summary {
		if s.MatchingRH == domain.MatchingYes {
			subsets[SubsetClaimedMatch] = append(subsets[SubsetClaimedMatch], s)
		}
		switch s.CategoryOfAlarm {
		case domain.CategoryAlarmNotTrigger:
			subsets[SubsetAlarmNotTrigger] = append(subsets[SubsetAlarmNotTrigger], s)
		case domain.CategoryFalseAlarmTrigger:
			subsets[SubsetFalseAlarmTrigger] = append(subsets[SubsetFalseAlarmTrigger], s)
		}
		if s.Justification == domain.JustificationContinuedHighRH {
			subsets[SubsetContinuedHighRH] = append(subsets[SubsetContinuedHighRH], s)
		}
		if s.AverageDGRH > avgDGRHThreshold {
			subsets[SubsetAvgDGRHAbove2] = append(subsets[SubsetAvgDGRHAbove2], s)
		}
	}

	total := len(summary)
	pct := func(count int) float64 {
		if total == 0 {
			return 0
		}
		return Round2(float64(count) / float64(total) * 100)
	}

	report := domain.KPIReport{
		TotalSites:             total,
		ClaimedMatchCount:      len(subsets[SubsetClaimedMatch]),
		AlarmNotTriggerCount:   len(subsets[SubsetAlarmNotTrigger]),
		FalseAlarmTriggerCount: len(subsets[SubsetFalseAlarmTrigger]),
		ContinuedHighRHCount:   len(subsets[SubsetContinuedHighRH]),
		AvgDGRHAbove2Count:     len(subsets[SubsetAvgDGRHAbove2]),
	}
	report.ClaimedMatchingRatePct = pct(report.ClaimedMatchCount)
	report.AlarmNotTriggerPct = pct(report.AlarmNotTriggerCount)
	report.FalseAlarmTriggerPct = pct(report.FalseAlarmTriggerCount)
	report.AvgDGRHAbove2Pct = pct(report.AvgDGRHAbove2Count)

	return report, subsets
}
