package prettytab

import (
	"fmt"
	"math"
	"slices"
)

// Table is a two-dimensional array with named row and column labels.
// Cells hold arbitrary values; numeric cells (any Go integer or float type)
// participate in summaries, everything else passes through to display
// untouched.
//
// A Table handed to [New] is owned by the Styler and is never mutated by
// rendering: the render pipeline works on a clone.
type Table struct {
	rowLabels   []string
	colLabels   []string
	cells       [][]any // row-major, len(rowLabels) x len(colLabels)
	indexName   string
	columnsName string
}

// NewTable builds a table from row labels, column labels, and row-major
// cells. The cell grid must be exactly len(rowLabels) rows of
// len(colLabels) values each.
func NewTable(rowLabels, colLabels []string, cells [][]any) (*Table, error) {
	if len(cells) != len(rowLabels) {
		return nil, fmt.Errorf("%w: %d rows of cells for %d row labels", ErrShapeMismatch, len(cells), len(rowLabels))
	}
	t := &Table{
		rowLabels: slices.Clone(rowLabels),
		colLabels: slices.Clone(colLabels),
		cells:     make([][]any, len(cells)),
	}
	for i, row := range cells {
		if len(row) != len(colLabels) {
			return nil, fmt.Errorf("%w: row %d has %d cells for %d column labels", ErrShapeMismatch, i, len(row), len(colLabels))
		}
		t.cells[i] = slices.Clone(row)
	}
	return t, nil
}

// WithNames sets the index and columns level names and returns the table.
// Either may be empty. Level names become header cells in rendered output.
func (t *Table) WithNames(indexName, columnsName string) *Table {
	t.indexName = indexName
	t.columnsName = columnsName
	return t
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rowLabels) }

// NumCols returns the number of data columns.
func (t *Table) NumCols() int { return len(t.colLabels) }

// RowLabels returns a copy of the row labels in order.
func (t *Table) RowLabels() []string { return slices.Clone(t.rowLabels) }

// ColLabels returns a copy of the column labels in order.
func (t *Table) ColLabels() []string { return slices.Clone(t.colLabels) }

// IndexName returns the row index level name, or "".
func (t *Table) IndexName() string { return t.indexName }

// ColumnsName returns the column index level name, or "".
func (t *Table) ColumnsName() string { return t.columnsName }

// At returns the cell at row i, column j.
func (t *Table) At(i, j int) any { return t.cells[i][j] }

// Cell returns the cell at the labeled position. The second return is false
// when either label is unknown.
func (t *Table) Cell(rowLabel, colLabel string) (any, bool) {
	i := slices.Index(t.rowLabels, rowLabel)
	j := slices.Index(t.colLabels, colLabel)
	if i < 0 || j < 0 {
		return nil, false
	}
	return t.cells[i][j], true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		rowLabels:   slices.Clone(t.rowLabels),
		colLabels:   slices.Clone(t.colLabels),
		cells:       make([][]any, len(t.cells)),
		indexName:   t.indexName,
		columnsName: t.columnsName,
	}
	for i, row := range t.cells {
		c.cells[i] = slices.Clone(row)
	}
	return c
}

func (t *Table) set(rowLabel, colLabel string, v any) bool {
	i := slices.Index(t.rowLabels, rowLabel)
	j := slices.Index(t.colLabels, colLabel)
	if i < 0 || j < 0 {
		return false
	}
	t.cells[i][j] = v
	return true
}

// appendColumn adds a column on the right, aligning values to the existing
// row labels. Rows absent from values get nil.
func (t *Table) appendColumn(label string, values map[string]any) {
	t.colLabels = append(t.colLabels, label)
	for i, rowLabel := range t.rowLabels {
		t.cells[i] = append(t.cells[i], values[rowLabel])
	}
}

// appendRow adds a row at the bottom, aligning values to the existing
// column labels. Columns absent from values get nil.
func (t *Table) appendRow(label string, values map[string]any) {
	t.rowLabels = append(t.rowLabels, label)
	row := make([]any, len(t.colLabels))
	for j, colLabel := range t.colLabels {
		row[j] = values[colLabel]
	}
	t.cells = append(t.cells, row)
}

// reorderColumns rearranges columns into the given label order. Labels
// missing from the table are skipped.
func (t *Table) reorderColumns(order []string) {
	idx := make([]int, 0, len(order))
	labels := make([]string, 0, len(order))
	for _, label := range order {
		if j := slices.Index(t.colLabels, label); j >= 0 {
			idx = append(idx, j)
			labels = append(labels, label)
		}
	}
	for i, row := range t.cells {
		next := make([]any, len(idx))
		for k, j := range idx {
			next[k] = row[j]
		}
		t.cells[i] = next
	}
	t.colLabels = labels
}

// columnFloats extracts the numeric values of a column in row order.
// Non-numeric and nil cells are skipped; NaN floats are kept so aggregation
// can propagate them.
func (t *Table) columnFloats(label string) []float64 {
	j := slices.Index(t.colLabels, label)
	if j < 0 {
		return nil
	}
	out := make([]float64, 0, len(t.cells))
	for i := range t.cells {
		if f, ok := toFloat64(t.cells[i][j]); ok {
			out = append(out, f)
		}
	}
	return out
}

// rowFloats is the row-wise counterpart of columnFloats.
func (t *Table) rowFloats(label string) []float64 {
	i := slices.Index(t.rowLabels, label)
	if i < 0 {
		return nil
	}
	out := make([]float64, 0, len(t.cells[i]))
	for _, v := range t.cells[i] {
		if f, ok := toFloat64(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// toFloat64 converts any Go numeric value to float64. nil and non-numeric
// values report false.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isNull reports whether a cell reads as missing: nil or a NaN float.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	switch n := v.(type) {
	case float64:
		return math.IsNaN(n)
	case float32:
		return math.IsNaN(float64(n))
	}
	return false
}
