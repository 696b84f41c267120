package domain

import (
	"time"
)

// AlarmType tags an alarm row as mains failure or generator running.
type AlarmType string

const (
	// AlarmTypeMains marks a mains/grid failure alarm ("M" in reports).
	AlarmTypeMains AlarmType = "M"
	// AlarmTypeGenerator marks a generator running alarm ("G" in reports).
	AlarmTypeGenerator AlarmType = "G"
	// AlarmTypeUnclassified marks an alarm matched by neither rule set.
	AlarmTypeUnclassified AlarmType = ""
)

// IsClassified reports whether the alarm matched a mains or generator rule.
func (t AlarmType) IsClassified() bool {
	return t == AlarmTypeMains || t == AlarmTypeGenerator
}

// AlarmRecord is one normalized row of an uploaded alarm file.
// RaisedAt is the zero time when the source value failed to parse;
// such rows never survive the refuelling-window filter.
type AlarmRecord struct {
	Site        string    `json:"site"`
	SiteKey     string    `json:"site_key"`
	Slogan      string    `json:"alarm_slogan"`
	RaisedAt    time.Time `json:"alarm_raised_date"`
	DurationHrs float64   `json:"duration_hr"`
	SourceFile  string    `json:"source_file"`
}

// HasTimestamp reports whether the alarm-raised date parsed successfully.
func (a AlarmRecord) HasTimestamp() bool {
	return !a.RaisedAt.IsZero()
}

// ClassifiedAlarm is an alarm row inside its site's refuelling window,
// enriched with the rule-table classification.
type ClassifiedAlarm struct {
	AlarmRecord
	Type AlarmType `json:"alarm_type"`
	// HighRunHour is set on generator alarms with duration at or above
	// the high run-hour threshold (10 hours).
	HighRunHour bool `json:"dg_rh_ge_10"`
}
