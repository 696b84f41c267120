package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgrhcli/pkg/contracts/domain"
)

func TestBuildKPIs(t *testing.T) {
	summary := []domain.SiteSummary{
		{RefuellingRecord: domain.RefuellingRecord{SiteKey: "A", AverageDGRH: 1.5}, MatchingRH: domain.MatchingYes},
		{RefuellingRecord: domain.RefuellingRecord{SiteKey: "B", AverageDGRH: 3}, MatchingRH: domain.MatchingYes, Justification: domain.JustificationContinuedHighRH},
		{RefuellingRecord: domain.RefuellingRecord{SiteKey: "C", AverageDGRH: 2}, MatchingRH: domain.MatchingNo, CategoryOfAlarm: domain.CategoryAlarmNotTrigger},
		{RefuellingRecord: domain.RefuellingRecord{SiteKey: "D", AverageDGRH: 5}, MatchingRH: domain.MatchingNo, CategoryOfAlarm: domain.CategoryFalseAlarmTrigger},
	}

	report, subsets := BuildKPIs(summary)

	assert.Equal(t, 4, report.TotalSites)
	assert.Equal(t, 2, report.ClaimedMatchCount)
	assert.Equal(t, 50.0, report.ClaimedMatchingRatePct)
	assert.Equal(t, 1, report.AlarmNotTriggerCount)
	assert.Equal(t, 25.0, report.AlarmNotTriggerPct)
	assert.Equal(t, 1, report.FalseAlarmTriggerCount)
	assert.Equal(t, 25.0, report.FalseAlarmTriggerPct)
	assert.Equal(t, 1, report.ContinuedHighRHCount)
	// Strictly above 2: sites B and D.
	assert.Equal(t, 2, report.AvgDGRHAbove2Count)
	assert.Equal(t, 50.0, report.AvgDGRHAbove2Pct)

	require.Len(t, subsets[SubsetClaimedMatch], 2)
	require.Len(t, subsets[SubsetContinuedHighRH], 1)
	assert.Equal(t, "B", subsets[SubsetContinuedHighRH][0].SiteKey)
	require.Len(t, subsets[SubsetAvgDGRHAbove2], 2)
}

func TestBuildKPIsPctRounding(t *testing.T) {
	summary := []domain.SiteSummary{
		{MatchingRH: domain.MatchingYes},
		{MatchingRH: domain.MatchingNo},
		{MatchingRH: domain.MatchingNo},
	}

	report, _ := BuildKPIs(summary)
	assert.Equal(t, 33.33, report.ClaimedMatchingRatePct)
}

func TestBuildKPIsEmptySummary(t *testing.T) {
	report, subsets := BuildKPIs(nil)

	assert.Equal(t, 0, report.TotalSites)
	assert.Equal(t, 0.0, report.ClaimedMatchingRatePct)
	assert.Equal(t, 0.0, report.AvgDGRHAbove2Pct)
	for _, name := range SubsetNames {
		assert.Empty(t, subsets[name])
	}
}

func TestBuildKPIsCategoryCountsPartitionNonMatching(t *testing.T) {
	summary := []domain.SiteSummary{
		{MatchingRH: domain.MatchingYes},
		{MatchingRH: domain.MatchingNo, CategoryOfAlarm: domain.CategoryAlarmNotTrigger},
		{MatchingRH: domain.MatchingNo, CategoryOfAlarm: domain.CategoryFalseAlarmTrigger},
	}

	report, _ := BuildKPIs(summary)
	assert.Equal(t, report.TotalSites,
		report.ClaimedMatchCount+report.AlarmNotTriggerCount+report.FalseAlarmTriggerCount)
}
