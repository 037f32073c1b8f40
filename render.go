package prettytab

import (
	"fmt"
	"slices"
)

// HeaderCell is one cell of a header row in the render tree.
type HeaderCell struct {
	Value   string   `json:"value" yaml:"value"`
	Classes []string `json:"classes" yaml:"classes"`
}

// Blank reports whether the cell is a structural blank (the empty corner
// above the row headings, or padding in an index-name row).
func (c HeaderCell) Blank() bool { return slices.Contains(c.Classes, "blank") }

// BodyCell is one body cell of the render tree. Value is the raw
// (post-formatting) cell value; Display is the string shown.
type BodyCell struct {
	Value   any      `json:"value" yaml:"value"`
	Display string   `json:"display" yaml:"display"`
	Classes []string `json:"classes" yaml:"classes"`
}

// RenderTree is the structured output of [Styler.Render]: header rows, body
// rows (each starting with a row-heading cell), and the CSS styles to apply.
// It is the input to HTML serialization and has no further dependence on
// the Styler that produced it.
type RenderTree struct {
	ID      string         `json:"id" yaml:"id"`
	Caption string         `json:"caption,omitempty" yaml:"caption,omitempty"`
	Head    [][]HeaderCell `json:"head" yaml:"head"`
	Body    [][]BodyCell   `json:"body" yaml:"body"`
	Styles  []Style        `json:"styles" yaml:"styles"`
}

// Render merges the registered summaries into a working copy of the table,
// applies the registered formatters in order, and translates the result
// into a render tree. The stored table is never touched, so consecutive
// renders with the same registrations produce identical output.
//
// Any error (a recorded registration error, or an invalid formatter axis)
// aborts the whole call.
func (s *Styler) Render() (*RenderTree, error) {
	work, styles, err := s.compose()
	if err != nil {
		return nil, err
	}
	tree := s.translate(work, styles)
	mergeHeadRows(tree)
	if s.hasNull {
		for _, row := range tree.Body {
			for i := range row {
				if isNull(row[i].Value) {
					row[i].Display = s.nullText
				}
			}
		}
	}
	return tree, nil
}

// FormattedTable returns the merged and formatted table for programmatic
// consumption, skipping HTML translation. When a null text is configured,
// missing cells are replaced with it directly in the returned table.
func (s *Styler) FormattedTable() (*Table, error) {
	work, _, err := s.compose()
	if err != nil {
		return nil, err
	}
	if s.hasNull {
		for i, row := range work.cells {
			for j, v := range row {
				if isNull(v) {
					work.cells[i][j] = s.nullText
				}
			}
		}
	}
	return work, nil
}

// compose clones the stored table, merges the pending summary columns and
// rows into it, blanks the corner cells shared by a summary row and a
// summary column, and applies the registered formatters. It returns the
// working table and the style list extended with the nth-child selectors
// that highlight the merged summaries.
func (s *Styler) compose() (*Table, []Style, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	work := s.table.Clone()
	styles := slices.Clone(s.styles)

	colNames := work.ColLabels()
	nRows, nCols := work.NumRows(), work.NumCols()

	sumColTitles := make([]string, len(s.summaryCols))
	for i, e := range s.summaryCols {
		sumColTitles[i] = e.title
	}
	sumRowTitles := make([]string, len(s.summaryRows))
	for i, e := range s.summaryRows {
		sumRowTitles[i] = e.title
	}

	// Columns first so summary rows span them; label alignment keeps every
	// value under its own row and column. Reordering restores the original
	// column order ahead of the summary columns in call order.
	for _, e := range s.summaryCols {
		work.appendColumn(e.title, e.values)
	}
	for _, e := range s.summaryRows {
		work.appendRow(e.title, e.values)
	}
	work.reorderColumns(append(colNames, sumColTitles...))

	// A cell on both a summary row and a summary column would be a
	// double aggregation; it stays empty.
	for _, rowTitle := range sumRowTitles {
		for _, colTitle := range sumColTitles {
			work.set(rowTitle, colTitle, "")
		}
	}

	// nth-child positions are 1-indexed; summary columns additionally skip
	// the row-heading column.
	for i := range s.summaryRows {
		styles = append(styles, Style{
			Selector: fmt.Sprintf("tr:nth-child(%d)", nRows+i+1),
			Props:    summaryProps,
		})
	}
	const indexLevels = 1
	for i := range s.summaryCols {
		styles = append(styles, Style{
			Selector: fmt.Sprintf("td:nth-child(%d)", nCols+indexLevels+i+1),
			Props:    summaryProps,
		})
	}

	if err := s.applyFormatters(work); err != nil {
		return nil, nil, err
	}
	return work, styles, nil
}

// translate builds the render tree from the working table: a column-label
// header row (with the corner cell carrying the columns level name, or a
// blank), an optional index-name row, and one body row per table row led by
// its row-heading cell.
func (s *Styler) translate(work *Table, styles []Style) *RenderTree {
	tree := &RenderTree{
		ID:      s.id,
		Caption: s.caption,
		Styles:  styles,
	}

	colLabels := work.ColLabels()
	corner := HeaderCell{Value: work.ColumnsName(), Classes: []string{"index_name"}}
	if work.ColumnsName() == "" {
		corner = HeaderCell{Classes: []string{"blank"}}
	}
	labelRow := make([]HeaderCell, 0, len(colLabels)+1)
	labelRow = append(labelRow, corner)
	for j, label := range colLabels {
		labelRow = append(labelRow, HeaderCell{
			Value:   label,
			Classes: []string{"col_heading", fmt.Sprintf("col%d", j)},
		})
	}
	tree.Head = append(tree.Head, labelRow)

	if name := work.IndexName(); name != "" {
		nameRow := make([]HeaderCell, 0, len(colLabels)+1)
		nameRow = append(nameRow, HeaderCell{Value: name, Classes: []string{"index_name"}})
		for range colLabels {
			nameRow = append(nameRow, HeaderCell{Classes: []string{"blank"}})
		}
		tree.Head = append(tree.Head, nameRow)
	}

	for i, rowLabel := range work.RowLabels() {
		row := make([]BodyCell, 0, work.NumCols()+1)
		row = append(row, BodyCell{
			Value:   rowLabel,
			Display: rowLabel,
			Classes: []string{"row_heading", fmt.Sprintf("row%d", i)},
		})
		for j := 0; j < work.NumCols(); j++ {
			v := work.At(i, j)
			row = append(row, BodyCell{
				Value:   v,
				Display: s.display(v),
				Classes: []string{"data", fmt.Sprintf("row%d", i), fmt.Sprintf("col%d", j)},
			})
		}
		tree.Body = append(tree.Body, row)
	}
	return tree
}

// mergeHeadRows collapses a two-row header into one when every column
// position has exactly one non-blank candidate, preferring it. A position
// where both cells are blank, or both carry content, makes the merge
// ambiguous and both rows are kept.
func mergeHeadRows(tree *RenderTree) {
	if len(tree.Head) != 2 {
		return
	}
	top, bottom := tree.Head[0], tree.Head[1]
	if len(top) != len(bottom) {
		return
	}
	merged := make([]HeaderCell, len(top))
	for i := range top {
		switch {
		case !top[i].Blank() && bottom[i].Blank():
			merged[i] = top[i]
		case top[i].Blank() && !bottom[i].Blank():
			merged[i] = bottom[i]
		default:
			return
		}
	}
	tree.Head = [][]HeaderCell{merged}
}
