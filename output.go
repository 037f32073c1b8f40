package prettytab

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format represents an output format for the composed table.
type Format string

const (
	FormatHTML     Format = "html"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

var formats = []Format{FormatHTML, FormatTable, FormatMarkdown, FormatCSV, FormatTSV, FormatJSON, FormatYAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string, for wiring to a CLI flag.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BorderStyle controls text table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// Write renders the composed table to w in the given format. FormatHTML
// goes through the render tree; every other format works on the merged and
// formatted table.
func (s *Styler) Write(w io.Writer, f Format) error {
	if f == FormatHTML {
		tree, err := s.Render()
		if err != nil {
			return err
		}
		return tree.WriteHTML(w)
	}

	g, err := s.grid()
	if err != nil {
		return err
	}
	switch f {
	case FormatTable:
		return s.writeTextTable(w, g)
	case FormatMarkdown:
		return writeMarkdownGrid(w, g)
	case FormatCSV:
		return writeDelimited(w, g, ',')
	case FormatTSV:
		return writeDelimited(w, g, '\t')
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.doc())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(g.doc()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders the composed table in the given format and returns the
// bytes.
func (s *Styler) Marshal(f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// grid is the string form of the composed table shared by all text
// formats: a header row, display-formatted body rows, and the position
// where summary rows start (for separator placement).
type grid struct {
	caption      string
	header       []string
	rows         [][]string
	summaryStart int // body row index of the first summary row; -1 if none
}

func (s *Styler) grid() (*grid, error) {
	work, err := s.FormattedTable()
	if err != nil {
		return nil, err
	}
	g := &grid{caption: s.caption, summaryStart: -1}
	if len(s.summaryRows) > 0 {
		g.summaryStart = work.NumRows() - len(s.summaryRows)
	}

	if s.showIndex {
		g.header = append(g.header, work.IndexName())
	}
	g.header = append(g.header, work.ColLabels()...)

	for i, rowLabel := range work.RowLabels() {
		var row []string
		if s.showIndex {
			row = append(row, rowLabel)
		}
		for j := 0; j < work.NumCols(); j++ {
			row = append(row, s.display(work.At(i, j)))
		}
		g.rows = append(g.rows, row)
	}
	return g, nil
}

type gridDoc struct {
	Caption string       `json:"caption,omitempty" yaml:"caption,omitempty"`
	Columns []string     `json:"columns" yaml:"columns"`
	Rows    []gridRowDoc `json:"rows" yaml:"rows"`
}

type gridRowDoc struct {
	Cells   []string `json:"cells" yaml:"cells"`
	Summary bool     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func (g *grid) doc() gridDoc {
	doc := gridDoc{Caption: g.caption, Columns: g.header}
	for i, row := range g.rows {
		doc.Rows = append(doc.Rows, gridRowDoc{
			Cells:   row,
			Summary: g.summaryStart >= 0 && i >= g.summaryStart,
		})
	}
	return doc
}

// --- Text table ---

func (s *Styler) writeTextTable(w io.Writer, g *grid) error {
	widths := gridWidths(g)
	var err error
	if s.border == BorderNone {
		err = writePlainGrid(w, g, widths)
	} else {
		err = writeBorderedGrid(w, g, widths, borderSets[s.border])
	}
	if err != nil {
		return err
	}
	if g.caption != "" {
		if _, err := fmt.Fprintln(w, g.caption); err != nil {
			return err
		}
	}
	return nil
}

func gridWidths(g *grid) []int {
	widths := make([]int, len(g.header))
	for i, h := range g.header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range g.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// alignGridCell pads a cell to width; the first (row label) column is
// left-aligned, data columns right-aligned.
func alignGridCell(cell string, width, col int) string {
	pad := width - runewidth.StringWidth(cell)
	if pad < 0 {
		pad = 0
	}
	if col == 0 {
		return cell + strings.Repeat(" ", pad)
	}
	return strings.Repeat(" ", pad) + cell
}

func writeBorderedGrid(w io.Writer, g *grid, widths []int, b borderChars) error {
	line := func(left, tee, right string) error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat(b.horizontal, width+2)
		}
		_, err := fmt.Fprintln(w, left+strings.Join(parts, tee)+right)
		return err
	}
	row := func(cells []string) error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + alignGridCell(cell, width, i) + " "
		}
		_, err := fmt.Fprintln(w, b.vertical+strings.Join(parts, b.vertical)+b.vertical)
		return err
	}

	if err := line(b.topLeft, b.topTee, b.topRight); err != nil {
		return err
	}
	if err := row(g.header); err != nil {
		return err
	}
	if err := line(b.leftTee, b.cross, b.rightTee); err != nil {
		return err
	}
	for i, cells := range g.rows {
		if i == g.summaryStart {
			if err := line(b.leftTee, b.cross, b.rightTee); err != nil {
				return err
			}
		}
		if err := row(cells); err != nil {
			return err
		}
	}
	return line(b.bottomLeft, b.bottomTee, b.bottomRight)
}

func writePlainGrid(w io.Writer, g *grid, widths []int) error {
	sep := func() error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat("-", width)
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, "  "))
		return err
	}
	row := func(cells []string) error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = alignGridCell(cell, width, i)
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := row(g.header); err != nil {
		return err
	}
	if err := sep(); err != nil {
		return err
	}
	for i, cells := range g.rows {
		if i == g.summaryStart {
			if err := sep(); err != nil {
				return err
			}
		}
		if err := row(cells); err != nil {
			return err
		}
	}
	return nil
}

// --- Markdown ---

func writeMarkdownGrid(w io.Writer, g *grid) error {
	widths := gridWidths(g)
	// Minimum 3 for alignment markers.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = alignGridCell(cell, width, i)
		}
		_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(parts, " | "))
		return err
	}

	if err := writeRow(g.header); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		if i == 0 {
			sep[i] = strings.Repeat("-", width)
		} else {
			sep[i] = strings.Repeat("-", width-1) + ":"
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, cells := range g.rows {
		if err := writeRow(cells); err != nil {
			return err
		}
	}
	return nil
}

// --- CSV / TSV ---

func writeDelimited(w io.Writer, g *grid, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(g.header); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
