package model

// UIDColumn is the synthetic column holding each row's input position
const UIDColumn = "uid"

// Table is a fully loaded input table. Rows hold values aligned with Columns;
// a row's index in Rows is its uid.
type Table struct {
	Columns    []string
	Rows       [][]string
	TextColumn string
	textIndex  int
}

// NewTable builds a table and resolves the text column. It returns false if
// textColumn is not one of columns.
func NewTable(columns []string, rows [][]string, textColumn string) (*Table, bool) {
	idx := -1
	for i, c := range columns {
		if c == textColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	return &Table{
		Columns:    columns,
		Rows:       rows,
		TextColumn: textColumn,
		textIndex:  idx,
	}, true
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Text returns the strategy text of row i
func (t *Table) Text(i int) string {
	row := t.Rows[i]
	if t.textIndex >= len(row) {
		return ""
	}
	return row[t.textIndex]
}

// Texts returns the strategy text of every row in order
func (t *Table) Texts() []string {
	texts := make([]string, len(t.Rows))
	for i := range t.Rows {
		texts[i] = t.Text(i)
	}
	return texts
}

// Masks holds per-category membership, aligned by row position
type Masks struct {
	ByCategory map[int][]bool // Category ID -> per-row verdict
	Any        []bool         // True where at least one category matched
}

// Count returns how many rows are set in mask
func Count(mask []bool) int {
	n := 0
	for _, v := range mask {
		if v {
			n++
		}
	}
	return n
}

// Subset is an ordered selection of rows destined for one output file
type Subset struct {
	Name       string // Category name, or the unclassified name
	CategoryID int    // 0 for the unclassified subset
	FileName   string
	Rows       []int // Row indices in input order
}
