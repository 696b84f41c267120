package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dgrhcli/internal/errors"
)

func alarmTable(header []string, rows [][]string) *Table {
	return NewTable(header, rows)
}

func TestConcatAlarmFiles(t *testing.T) {
	files := []AlarmFile{
		{Name: "week1.csv", Table: alarmTable(
			[]string{"Site", "Alarm Slogan", "Alarm Raised Date", "Duration"},
			[][]string{{"A", "Genset Running", "01/03/2024 10:00:00", "4"}},
		)},
		{Name: "week2.csv", Table: alarmTable(
			[]string{"Site", "Alarm Slogan", "Alarm Raised Date", "Duration", "Region"},
			[][]string{{"B", "Mains Fail", "02/03/2024 10:00:00", "2", "North"}},
		)},
	}

	combined := ConcatAlarmFiles(files)
	require.Equal(t, 2, combined.Len())

	// Union of columns in first-seen order, source tag appended.
	assert.Equal(t, []string{"site", "alarm_slogan", "alarm_raised_date", "duration", "region", "source_file"}, combined.Columns)
	assert.Equal(t, "", combined.Cell(0, "region"), "column absent from the narrower file reads empty")
	assert.Equal(t, "week1.csv", combined.Cell(0, "source_file"))
	assert.Equal(t, "week2.csv", combined.Cell(1, "source_file"))
}

func TestLoadAlarms(t *testing.T) {
	files := []AlarmFile{
		{Name: "alarms.csv", Table: alarmTable(
			[]string{"Site", "Alarm Slogan", "Alarm Raised Date", "Duration"},
			[][]string{
				{"SITE-01", "Genset Running", "05/03/2024 08:00:00", "4.5"},
				{"SITE-02", "Mains Fail", "bad date", "x"},
			},
		)},
	}

	records, err := LoadAlarms(files, NewHeuristicDetector())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SITE_01", records[0].SiteKey)
	assert.Equal(t, 4.5, records[0].DurationHrs)
	assert.True(t, records[0].HasTimestamp())
	assert.Equal(t, "alarms.csv", records[0].SourceFile)

	// Bad cells coerce rather than fail the load.
	assert.False(t, records[1].HasTimestamp())
	assert.Equal(t, 0.0, records[1].DurationHrs)
}

func TestLoadAlarmsNoFiles(t *testing.T) {
	_, err := LoadAlarms(nil, NewHeuristicDetector())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeSchema, appErr.Type)
}

func TestLoadAlarmsEmptyAfterConcat(t *testing.T) {
	files := []AlarmFile{
		{Name: "empty.csv", Table: alarmTable([]string{"Site", "Alarm Slogan", "Alarm Raised Date"}, nil)},
	}

	_, err := LoadAlarms(files, NewHeuristicDetector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty after concatenation")
}

func TestLoadAlarmsMissingColumns(t *testing.T) {
	files := []AlarmFile{
		{Name: "bad.csv", Table: alarmTable(
			[]string{"Site", "Duration"},
			[][]string{{"A", "4"}},
		)},
	}

	_, err := LoadAlarms(files, NewHeuristicDetector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alarm_slogan")
	assert.Contains(t, err.Error(), "alarm_raised_date")
}
