package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"ambiguous slash date is day first", "03/04/2024", time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)},
		{"slash with time", "15/02/2024 08:30:00", time.Date(2024, time.February, 15, 8, 30, 0, 0, time.UTC)},
		{"dash date", "01-12-2023", time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)},
		{"iso date", "2024-04-03", time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)},
		{"iso datetime", "2024-04-03 12:00:00", time.Date(2024, time.April, 3, 12, 0, 0, 0, time.UTC)},
		{"month name", "3-Apr-2024", time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "not a date", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDayFirst(tt.in))
		})
	}
}
