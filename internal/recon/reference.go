package recon

import (
	"fmt"
	"strings"

	"dgrhcli/internal/errors"
	"dgrhcli/pkg/contracts/domain"
)

// Canonical reference column names after normalization and alias folding.
const (
	colSiteID       = "site_id"
	colPreviousDate = "previous_refuelling_date"
	colPresentDate  = "present_refuelling_date"
	colClaimedRH    = "claimed_rh"
)

var referenceRequired = []string{colSiteID, colPreviousDate, colPresentDate, colClaimedRH}

const hoursPerDay = 24

// LoadReference turns the reference table into refuelling records keyed by
// canonical site key. Dates parse day-first and coerce to missing on
// failure; claimed RH coerces to zero; duplicate canonical keys keep the
// first occurrence. Column requirements are checked after alias folding.
func LoadReference(t *Table) ([]domain.RefuellingRecord, error) {
	for _, col := range append([]string(nil), t.Columns...) {
		if canonical := CanonicalReferenceColumn(col); canonical != col {
			t.RenameColumn(col, canonical)
		}
	}
	t.RenameColumn("site", colSiteID)

	var missing []string
	for _, col := range referenceRequired {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(fmt.Sprintf(
			"reference file is missing required columns: %s", strings.Join(missing, ", ")))
	}

	known := map[string]bool{
		colSiteID: true, colPreviousDate: true, colPresentDate: true, colClaimedRH: true,
	}
	var extraCols []string
	for _, col := range t.Columns {
		if !known[col] {
			extraCols = append(extraCols, col)
		}
	}

	records := make([]domain.RefuellingRecord, 0, t.Len())
	seen := make(map[string]bool, t.Len())
	for r := 0; r < t.Len(); r++ {
		rec := domain.RefuellingRecord{
			SiteID:   t.Cell(r, colSiteID),
			Previous: ParseDayFirst(t.Cell(r, colPreviousDate)),
			Present:  ParseDayFirst(t.Cell(r, colPresentDate)),
		}
		rec.SiteKey = NormalizeSiteKey(rec.SiteID)
		if claimed, ok := ParseNumber(t.Cell(r, colClaimedRH)); ok {
			rec.ClaimedRH = claimed
		}

		// Negative or missing date pairs clamp the day count to zero.
		if rec.HasWindow() {
			if days := int(rec.Present.Sub(rec.Previous).Hours() / hoursPerDay); days > 0 {
				rec.DayDifference = days
			}
		}
		rec.TotalAvailableHr = float64(rec.DayDifference * hoursPerDay)
		if rec.DayDifference > 0 {
			rec.AverageDGRH = rec.ClaimedRH / float64(rec.DayDifference)
		}

		if len(extraCols) > 0 {
			rec.Extra = make(map[string]string, len(extraCols))
			for _, col := range extraCols {
				rec.Extra[col] = t.Cell(r, col)
			}
		}

		// First occurrence wins on duplicate canonical keys.
		if seen[rec.SiteKey] {
			continue
		}
		seen[rec.SiteKey] = true
		records = append(records, rec)
	}
	return records, nil
}

// ReferenceIndex maps canonical site keys to their refuelling record for
// the window join. The missing-key sentinel never indexes.
func ReferenceIndex(records []domain.RefuellingRecord) map[string]domain.RefuellingRecord {
	index := make(map[string]domain.RefuellingRecord, len(records))
	for _, rec := range records {
		if rec.SiteKey == MissingKey {
			continue
		}
		if _, ok := index[rec.SiteKey]; !ok {
			index[rec.SiteKey] = rec
		}
	}
	return index
}
