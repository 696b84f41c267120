package domain

// Matching verdicts and categorical judgments used in the summary table.
// The strings are reporting conventions carried over from the fleet
// reports this tool replaces; downstream consumers match on them exactly.
const (
	MatchingYes = "Yes"
	MatchingNo  = "No"

	CategoryAlarmNotTrigger   = "Alarm not trigger"
	CategoryFalseAlarmTrigger = "False alarm Trigger"

	JustificationFalseAlarm      = "False alarm"
	JustificationContinuedHighRH = "Justify continued DGRH>10"
)

// SiteAggregate holds the summed classified durations for one site key.
type SiteAggregate struct {
	SiteKey       string  `json:"site_key"`
	GensetRH      float64 `json:"genset_rh"`
	MainsFailedHr float64 `json:"mains_failed_hr"`
}

// SiteSummary is one row of the reconciliation summary: the reference
// record left-joined with its aggregates plus every derived metric.
type SiteSummary struct {
	RefuellingRecord

	GensetRH      float64 `json:"genset_rh"`
	MainsFailedHr float64 `json:"mains_failed_hr"`

	// ActualMainsFailedHr sums mains AND generator hours. The label is
	// historical fleet-reporting convention, not a bug; KPIs depend on
	// this exact value.
	ActualMainsFailedHr float64 `json:"actual_mains_failed_hr"`
	GridAvailabilityPct float64 `json:"grid_availability_pct"`
	RHDifference        float64 `json:"rh_difference"`
	// PctOfRHDifference is only meaningful when PctValid is set
	// (claimed RH was non-zero).
	PctOfRHDifference float64 `json:"pct_of_rh_difference"`
	PctValid          bool    `json:"pct_valid"`

	MatchingRH      string `json:"matching_rh"`
	CategoryOfAlarm string `json:"category_of_alarm"`
	// HighRHDates lists the distinct ISO dates (ascending) on which a
	// generator alarm of 10 hours or more occurred at this site.
	HighRHDates   []string `json:"high_rh_dates,omitempty"`
	Justification string   `json:"justification"`
}

// KPIReport is the fleet-wide roll-up over the summary table.
type KPIReport struct {
	TotalSites int `json:"total_sites"`

	ClaimedMatchCount      int     `json:"claimed_match_count"`
	ClaimedMatchingRatePct float64 `json:"claimed_matching_rate_pct"`

	AlarmNotTriggerCount int     `json:"alarm_not_trigger_count"`
	AlarmNotTriggerPct   float64 `json:"alarm_not_trigger_pct"`

	FalseAlarmTriggerCount int     `json:"false_alarm_trigger_count"`
	FalseAlarmTriggerPct   float64 `json:"false_alarm_trigger_pct"`

	ContinuedHighRHCount int `json:"continued_high_rh_count"`

	AvgDGRHAbove2Count int     `json:"avg_dgrh_above_2_count"`
	AvgDGRHAbove2Pct   float64 `json:"avg_dgrh_above_2_pct"`
}
