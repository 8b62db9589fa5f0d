// Package formatter turns the ingredient stage's raw model text into a table.
//
// Model output is untrusted. Parse reports why a reply does not have the
// expected {"<dish>": [{...}, ...]} shape; Format never fails and substitutes
// an empty table instead.
package formatter

// Row maps a column name to a cell value. Values are JSON scalars
// (string, json.Number, bool, nil) or nested maps and slices.
type Row map[string]any

// Table is an ordered list of rows. Columns lists every field seen across
// the rows in order of first appearance.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows and no columns.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0 && len(t.Columns) == 0
}

// Cell returns the value of column col in row i. ok is false when the row
// has no such field.
func (t Table) Cell(i int, col string) (v any, ok bool) {
	if i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	v, ok = t.Rows[i][col]
	return v, ok
}

// Records returns the rows as value slices in column order. Missing cells are nil.
func (t Table) Records() [][]any {
	records := make([][]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			record[j] = row[col]
		}
		records = append(records, record)
	}
	return records
}
