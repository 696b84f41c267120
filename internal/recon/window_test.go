package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgrhcli/pkg/contracts/domain"
)

func TestFilterWindow(t *testing.T) {
	previous := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	present := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	index := map[string]domain.RefuellingRecord{
		"SITE_01": {SiteKey: "SITE_01", Previous: previous, Present: present},
		"SITE_03": {SiteKey: "SITE_03"}, // missing window
	}

	mk := func(key string, ts time.Time) domain.AlarmRecord {
		return domain.AlarmRecord{SiteKey: key, RaisedAt: ts}
	}

	alarms := []domain.AlarmRecord{
		mk("SITE_01", previous),                    // lower bound, inclusive
		mk("SITE_01", present),                     // upper bound, inclusive
		mk("SITE_01", previous.Add(72*time.Hour)),  // inside
		mk("SITE_01", previous.Add(-time.Second)),  // before window
		mk("SITE_01", present.Add(time.Second)),    // after window
		mk("SITE_01", time.Time{}),                 // missing timestamp
		mk("SITE_02", previous.Add(24*time.Hour)),  // site not in reference
		mk("SITE_03", previous.Add(24*time.Hour)),  // reference window missing
	}

	kept := FilterWindow(alarms, index)
	require.Len(t, kept, 3)
	for _, a := range kept {
		assert.Equal(t, "SITE_01", a.SiteKey)
	}
	assert.Equal(t, previous, kept[0].RaisedAt)
	assert.Equal(t, present, kept[1].RaisedAt)
}

func TestFilterWindowEmptyInputs(t *testing.T) {
	assert.Empty(t, FilterWindow(nil, map[string]domain.RefuellingRecord{}))
	assert.Empty(t, FilterWindow([]domain.AlarmRecord{{SiteKey: "A"}}, nil))
}
