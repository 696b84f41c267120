package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dgrhcli/internal/errors"
)

func TestHeuristicDetectorSingleKeywordColumn(t *testing.T) {
	table := NewTable(
		[]string{"site", "alarm_slogan", "duration"},
		[][]string{{"A", "Genset", "4"}},
	)

	col, err := NewHeuristicDetector().Detect(table)
	require.NoError(t, err)
	assert.Equal(t, "duration", col)
}

func TestHeuristicDetectorPrefersDurationName(t *testing.T) {
	// Both "total_hrs" and "duration_hrs" match keywords; the tie breaks to
	// the duration-specific name.
	table := NewTable(
		[]string{"site", "total_hrs", "duration_hrs"},
		[][]string{{"A", "10", "4"}},
	)

	col, err := NewHeuristicDetector().Detect(table)
	require.NoError(t, err)
	assert.Equal(t, "duration_hrs", col)
}

func TestHeuristicDetectorFallsBackToNumericColumn(t *testing.T) {
	// No keyword-named column; the only usable numeric column wins.
	table := NewTable(
		[]string{"site", "alarm_slogan", "elapsed"},
		[][]string{
			{"A", "Genset", "4.5"},
			{"B", "Mains", "2"},
		},
	)

	col, err := NewHeuristicDetector().Detect(table)
	require.NoError(t, err)
	assert.Equal(t, "elapsed", col)
}

func TestHeuristicDetectorNoCandidate(t *testing.T) {
	table := NewTable(
		[]string{"site", "alarm_slogan"},
		[][]string{{"A", "Genset"}},
	)

	_, err := NewHeuristicDetector().Detect(table)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeSchema, appErr.Type)
}
