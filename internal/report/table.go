package report

import "fmt"

// Table is a small uniform table: ordered columns, each with an
// equal-length list of scalar cells.
type Table struct {
	Columns []string
	Data    map[string][]Value
}

// NewTable builds an empty table with the given column order.
func NewTable(columns ...string) *Table {
	t := &Table{
		Columns: columns,
		Data:    make(map[string][]Value, len(columns)),
	}
	for _, col := range columns {
		t.Data[col] = nil
	}
	return t
}

// AppendRow appends one row; cells match the column order positionally.
// Missing trailing cells default to empty strings.
func (t *Table) AppendRow(cells ...Value) {
	for i, col := range t.Columns {
		cell := String("")
		if i < len(cells) {
			cell = cells[i]
		}
		t.Data[col] = append(t.Data[col], cell)
	}
}

// NumRows returns the row count, taken from the first column.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Data[t.Columns[0]])
}

// Cell returns the cell at (row, column name). Zero Value when out of range.
func (t *Table) Cell(row int, column string) Value {
	cells := t.Data[column]
	if row < 0 || row >= len(cells) {
		return Value{}
	}
	return cells[row]
}

// SumColumn sums the numeric cells of a column. String cells count as zero.
func (t *Table) SumColumn(column string) float64 {
	var sum float64
	for _, cell := range t.Data[column] {
		if cell.Kind == KindNumber {
			sum += cell.Num
		}
	}
	return sum
}

// IsNumeric reports whether every cell in the column is a number.
func (t *Table) IsNumeric(column string) bool {
	cells := t.Data[column]
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell.Kind != KindNumber {
			return false
		}
	}
	return true
}

// Equal reports deep equality including column order and row order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) {
		return false
	}
	for i, col := range t.Columns {
		if o.Columns[i] != col {
			return false
		}
		a, b := t.Data[col], o.Data[col]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if !a[j].Equal(b[j]) {
				return false
			}
		}
	}
	return true
}

// validate rejects ragged tables, nested tables, and data for unknown columns.
func (t *Table) validate() error {
	rows := -1
	for _, col := range t.Columns {
		cells, ok := t.Data[col]
		if !ok {
			return fmt.Errorf("column %q has no data", col)
		}
		if rows == -1 {
			rows = len(cells)
		} else if len(cells) != rows {
			return fmt.Errorf("column %q has %d cells, want %d", col, len(cells), rows)
		}
		for _, cell := range cells {
			if cell.Kind == KindTable {
				return fmt.Errorf("column %q contains a nested table", col)
			}
		}
	}
	if len(t.Data) > len(t.Columns) {
		return fmt.Errorf("table has data for columns not listed in column order")
	}
	return nil
}
