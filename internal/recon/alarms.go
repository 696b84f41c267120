package recon

import (
	"fmt"
	"strings"

	"dgrhcli/internal/errors"
	"dgrhcli/pkg/contracts/domain"
)

// Canonical alarm column names after normalization.
const (
	colSite        = "site"
	colAlarmSlogan = "alarm_slogan"
	colRaisedDate  = "alarm_raised_date"
	colSourceFile  = "source_file"
)

var alarmRequired = []string{colSite, colAlarmSlogan, colRaisedDate}

// AlarmFile pairs a parsed alarm table with the upload it came from; the
// tag survives into the raw output so rows stay traceable across
// concatenated files.
type AlarmFile struct {
	Name  string
	Table *Table
}

// ConcatAlarmFiles merges the uploaded alarm tables into one table whose
// column set is the first-seen union of all inputs, with a source_file
// column appended. Cells absent from a narrower input are empty.
func ConcatAlarmFiles(files []AlarmFile) *Table {
	var columns []string
	seen := make(map[string]bool)
	for _, f := range files {
		for _, col := range f.Table.Columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	if !seen[colSourceFile] {
		columns = append(columns, colSourceFile)
	}

	var rows [][]string
	for _, f := range files {
		for r := 0; r < f.Table.Len(); r++ {
			row := make([]string, len(columns))
			for i, col := range columns {
				if col == colSourceFile && !f.Table.HasColumn(colSourceFile) {
					row[i] = f.Name
					continue
				}
				row[i] = f.Table.Cell(r, col)
			}
			rows = append(rows, row)
		}
	}
	return NewTable(columns, rows)
}

// LoadAlarms concatenates the alarm tables and turns them into normalized
// alarm records. Required columns are validated and the duration column
// resolved once, on the combined table, so heterogeneous uploads share a
// single schema decision. Unparseable durations coerce to zero and
// unparseable timestamps to missing.
func LoadAlarms(files []AlarmFile, detector DurationDetector) ([]domain.AlarmRecord, error) {
	if len(files) == 0 {
		return nil, errors.NewSchemaError("no alarm file data read")
	}

	t := ConcatAlarmFiles(files)
	if t.Len() == 0 {
		return nil, errors.NewSchemaError("alarm input is empty after concatenation")
	}

	var missing []string
	for _, col := range alarmRequired {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(fmt.Sprintf(
			"missing required columns in alarm file(s): %s", strings.Join(missing, ", ")))
	}

	durCol, err := detector.Detect(t)
	if err != nil {
		return nil, err
	}

	records := make([]domain.AlarmRecord, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		rec := domain.AlarmRecord{
			Site:       t.Cell(r, colSite),
			Slogan:     t.Cell(r, colAlarmSlogan),
			RaisedAt:   ParseDayFirst(t.Cell(r, colRaisedDate)),
			SourceFile: t.Cell(r, colSourceFile),
		}
		rec.SiteKey = NormalizeSiteKey(rec.Site)
		if v, ok := ParseNumber(t.Cell(r, durCol)); ok {
			rec.DurationHrs = v
		}
		records = append(records, rec)
	}
	return records, nil
}
