package recon

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"dgrhcli/internal/errors"
)

// Table is an in-memory tabular input: a normalized header row plus data
// rows. Rows may be ragged; Cell returns "" past the row's end.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from a raw header row and data rows. Column
// labels are normalized; on duplicate normalized labels the first wins.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		Columns: NormalizeColumns(header),
		Rows:    rows,
		index:   make(map[string]int, len(header)),
	}
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
	return t
}

// Clone returns a deep copy of the table. Loaders rename columns in
// place, so cached tables hand out clones.
func (t *Table) Clone() *Table {
	clone := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, row := range t.Rows {
		clone.Rows[i] = append([]string(nil), row...)
	}
	for k, v := range t.index {
		clone.index[k] = v
	}
	return clone
}

// ColumnIndex returns the position of a normalized column name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table contains the normalized column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the trimmed value of the named column in row r, or "" when
// the column is absent or the row is too short.
func (t *Table) Cell(r int, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(t.Rows[r]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[r][i])
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// RenameColumn renames a normalized column in place. A no-op when the
// source column is absent or the target already exists.
func (t *Table) RenameColumn(from, to string) {
	i, ok := t.index[from]
	if !ok {
		return
	}
	if _, exists := t.index[to]; exists {
		return
	}
	t.Columns[i] = to
	delete(t.index, from)
	t.index[to] = i
}

// ParseNumber parses a numeric cell value, tolerating thousands separators
// and surrounding whitespace. ok is false for empty or non-numeric input.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsNumericColumn reports whether the column holds usable numeric data:
// every non-empty cell parses as a number, at least one cell is non-empty,
// and the values are not identically zero.
func (t *Table) IsNumericColumn(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	var nonEmpty int
	var absSum float64
	for _, row := range t.Rows {
		if i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		v, ok := ParseNumber(cell)
		if !ok {
			return false
		}
		nonEmpty++
		if v < 0 {
			absSum -= v
		} else {
			absSum += v
		}
	}
	return nonEmpty > 0 && absSum > 0
}

// ReadTable reads CSV or xlsx bytes into a Table, keyed on the filename
// extension the way uploads arrive. xlsx workbooks are read from the first
// sheet that yields a header row and at least one cell of data.
func ReadTable(data []byte, filename string) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return readCSV(data, filename)
	}
	return readWorkbook(data, filename)
}

func readCSV(data []byte, filename string) (*Table, error) {
	// Excel-exported CSVs lead with a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewInputError("failed to parse CSV file", err).
			WithContext("file", filename)
	}
	if len(records) == 0 {
		return nil, errors.NewInputError("file contains no rows", nil).
			WithContext("file", filename)
	}
	return NewTable(records[0], records[1:]), nil
}

func readWorkbook(data []byte, filename string) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewInputError("failed to open workbook", err).
			WithContext("file", filename)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if hasData(rows[0]) {
			return NewTable(rows[0], rows[1:]), nil
		}
	}
	return nil, errors.NewInputError("no sheet with tabular data found", nil).
		WithContext("file", filename)
}

func hasData(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
