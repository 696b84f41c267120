package domain

import (
	"time"
)

// RefuellingRecord is one row of the reference table: a site's current
// refuelling window and the run-hours the site claims for it.
// Date fields are the zero time when the source value failed to parse.
type RefuellingRecord struct {
	SiteID   string `json:"site_id"`
	SiteKey  string `json:"site_key"`
	Previous time.Time `json:"previous_refuelling_date"`
	Present  time.Time `json:"present_refuelling_date"`
	// ClaimedRH is the vendor-reported generator run-hours for the window.
	ClaimedRH float64 `json:"claimed_rh"`

	// Derived at load time.
	DayDifference    int     `json:"day_difference"`
	TotalAvailableHr float64 `json:"total_available_hr"`
	AverageDGRH      float64 `json:"average_dgrh"`

	// Extra carries any additional normalized reference columns
	// (office, generic code, ...) so the summary can reproduce them.
	Extra map[string]string `json:"extra,omitempty"`
}

// HasWindow reports whether both refuelling dates parsed successfully.
func (r RefuellingRecord) HasWindow() bool {
	return !r.Previous.IsZero() && !r.Present.IsZero()
}

// Contains reports whether ts falls inside the refuelling window,
// inclusive on both ends. Missing dates never match.
func (r RefuellingRecord) Contains(ts time.Time) bool {
	if ts.IsZero() || !r.HasWindow() {
		return false
	}
	return !ts.Before(r.Previous) && !ts.After(r.Present)
}
