package contracts

// Table is a raw delimited file: a header and string rows.
// Rows may be shorter than the header; missing cells read as "".
type Table struct {
	Source string
	SHA256 string // hex digest of the file bytes as read
	Header []string
	Rows   [][]string
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of header columns
func (t *Table) NumCols() int {
	return len(t.Header)
}

// ColumnIndex returns the position of an exact header name, or -1
func ColumnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is short
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
