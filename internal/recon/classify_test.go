package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dgrhcli/pkg/contracts/domain"
)

func TestClassifierTag(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name   string
		slogan string
		want   domain.AlarmType
	}{
		{"mains keyword", "AC Mains Fail", domain.AlarmTypeMains},
		{"grid fail", "GRID FAIL - phase loss", domain.AlarmTypeMains},
		{"grid down", "grid down", domain.AlarmTypeMains},
		{"genset", "Genset Running", domain.AlarmTypeGenerator},
		{"generator", "generator on load", domain.AlarmTypeGenerator},
		{"dg word", "DG started", domain.AlarmTypeGenerator},
		{"dg needs word boundary", "badge reader fault", domain.AlarmTypeUnclassified},
		{"diesel gen", "Diesel Gen run", domain.AlarmTypeGenerator},
		{"case insensitive", "mAiNs FaIl", domain.AlarmTypeMains},
		{"mains wins on double match", "Genset running due to mains failure", domain.AlarmTypeMains},
		{"unrelated", "Door open", domain.AlarmTypeUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Tag(tt.slogan))
		})
	}
}

func TestClassifyHighRunHourFlag(t *testing.T) {
	c := NewClassifier()

	alarms := []domain.AlarmRecord{
		{SiteKey: "A", Slogan: "Genset Running", DurationHrs: 12},
		{SiteKey: "A", Slogan: "Genset Running", DurationHrs: 10}, // threshold is inclusive
		{SiteKey: "A", Slogan: "Genset Running", DurationHrs: 9.9},
		{SiteKey: "A", Slogan: "Mains Fail", DurationHrs: 15}, // mains never flags
	}

	out := c.Classify(alarms)
	assert.True(t, out[0].HighRunHour)
	assert.True(t, out[1].HighRunHour)
	assert.False(t, out[2].HighRunHour)
	assert.False(t, out[3].HighRunHour)
}

func TestClassifyKeepsUnclassifiedRows(t *testing.T) {
	out := NewClassifier().Classify([]domain.AlarmRecord{{SiteKey: "A", Slogan: "Door open"}})
	assert.Len(t, out, 1)
	assert.Equal(t, domain.AlarmTypeUnclassified, out[0].Type)
}
