package exporter

import (
	"strconv"
	"strings"
	"time"

	"dgrhcli/internal/recon"
	"dgrhcli/pkg/contracts/domain"
)

const csvDateLayout = "2006-01-02"
const csvTimestampLayout = "2006-01-02 15:04:05"

// RawDocument renders the windowed, classified alarm rows.
func RawDocument(alarms []domain.ClassifiedAlarm) *Document {
	doc := &Document{
		Headers: []string{
			"site", "site_key", "alarm_slogan", "alarm_raised_date",
			"duration_hrs", "alarm_type", "dg_rh_ge_10", "source_file",
		},
	}
	for _, a := range alarms {
		ge10 := ""
		if a.HighRunHour {
			ge10 = formatHours(recon.Round2(a.DurationHrs))
		}
		doc.Records = append(doc.Records, []string{
			a.Site,
			a.SiteKey,
			a.Slogan,
			formatTimestamp(a.RaisedAt),
			formatHours(a.DurationHrs),
			string(a.Type),
			ge10,
			a.SourceFile,
		})
	}
	return doc
}

// SummaryDocument renders one row per reference site with every derived
// metric. Percentage fields print at two decimals; an invalid percentage
// difference prints empty.
func SummaryDocument(summary []domain.SiteSummary) *Document {
	doc := &Document{
		Headers: []string{
			"site_id", "previous_refuelling_date", "present_refuelling_date",
			"claimed_rh", "day_difference", "total_available_hr", "average_dgrh",
			"genset_rh", "mains_failed_hr", "actual_mains_failed_hr",
			"grid_availability_pct", "rh_difference", "pct_of_rh_difference",
			"matching_rh", "category_of_alarm", "dg_rh_ge_10_dates", "justification",
		},
	}
	for _, s := range summary {
		pct := ""
		if s.PctValid {
			pct = formatPct(s.PctOfRHDifference)
		}
		doc.Records = append(doc.Records, []string{
			s.SiteID,
			formatDate(s.Previous),
			formatDate(s.Present),
			formatHours(s.ClaimedRH),
			strconv.Itoa(s.DayDifference),
			formatHours(s.TotalAvailableHr),
			formatPct(s.AverageDGRH),
			formatHours(s.GensetRH),
			formatHours(s.MainsFailedHr),
			formatHours(s.ActualMainsFailedHr),
			formatPct(s.GridAvailabilityPct),
			formatHours(s.RHDifference),
			pct,
			s.MatchingRH,
			s.CategoryOfAlarm,
			strings.Join(s.HighRHDates, "; "),
			s.Justification,
		})
	}
	return doc
}

// KPIDocument renders the fleet roll-up as metric/count/pct rows.
func KPIDocument(report domain.KPIReport) *Document {
	return &Document{
		Headers: []string{"metric", "count", "pct"},
		Records: [][]string{
			{"total_sites", strconv.Itoa(report.TotalSites), ""},
			{"claimed_matching", strconv.Itoa(report.ClaimedMatchCount), formatPct(report.ClaimedMatchingRatePct)},
			{"alarm_not_trigger", strconv.Itoa(report.AlarmNotTriggerCount), formatPct(report.AlarmNotTriggerPct)},
			{"false_alarm_trigger", strconv.Itoa(report.FalseAlarmTriggerCount), formatPct(report.FalseAlarmTriggerPct)},
			{"continued_dgrh_gt_10", strconv.Itoa(report.ContinuedHighRHCount), ""},
			{"avg_dgrh_above_2", strconv.Itoa(report.AvgDGRHAbove2Count), formatPct(report.AvgDGRHAbove2Pct)},
		},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvDateLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvTimestampLayout)
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(recon.Round2(v), 'f', 2, 64)
}
