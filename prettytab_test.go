package prettytab_test

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/prettytab/prettytab"
)

// sampleTable is the 2x2 fixture used throughout: columns A and B, rows x
// and y.
//
//	    A    B
//	x  1.0  2.0
//	y  3.0  4.0
func sampleTable(t *testing.T) *prettytab.Table {
	t.Helper()
	tbl, err := prettytab.NewTable(
		[]string{"x", "y"},
		[]string{"A", "B"},
		[][]any{{1.0, 2.0}, {3.0, 4.0}},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTableShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := prettytab.NewTable([]string{"x"}, []string{"A"}, [][]any{{1.0}, {2.0}})
	assert.ErrorIs(t, err, prettytab.ErrShapeMismatch)

	_, err = prettytab.NewTable([]string{"x", "y"}, []string{"A", "B"}, [][]any{{1.0, 2.0}, {3.0}})
	assert.ErrorIs(t, err, prettytab.ErrShapeMismatch)
}

func TestTotalAppendsSummaryRow(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Total()
	out, err := s.FormattedTable()
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, out.ColLabels())
	assert.Equal(t, []string{"x", "y", "Total"}, out.RowLabels())

	v, ok := out.Cell("Total", "A")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
	v, ok = out.Cell("Total", "B")
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
}

func TestBothAxesBlankCorner(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Summary(prettytab.Sum, "Total", prettytab.AxisBoth)
	out, err := s.FormattedTable()
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "Total"}, out.ColLabels())
	assert.Equal(t, []string{"x", "y", "Total"}, out.RowLabels())

	// Row totals.
	v, ok := out.Cell("x", "Total")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	// Column totals.
	v, ok = out.Cell("Total", "A")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	// The corner is not the grand sum.
	v, ok = out.Cell("Total", "Total")
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMergedShapeProperty(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).
		Total().
		Average().
		Summary(prettytab.Sum, "Row Total", prettytab.AxisRows)
	out, err := s.FormattedTable()
	require.NoError(t, err)

	assert.Equal(t, 2+2, out.NumRows(), "original rows + summary rows")
	assert.Equal(t, 2+1, out.NumCols(), "original columns + summary columns")
}

func TestConvenienceSummaryTitles(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Total().Average().Median().Max().Min()
	out, err := s.FormattedTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "Total", "Average", "Median", "Maximum", "Minimum"}, out.RowLabels())

	v, ok := out.Cell("Average", "A")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = out.Cell("Maximum", "B")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestWithTitleOverride(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Total(prettytab.WithTitle("Subtotal"))
	out, err := s.FormattedTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "Subtotal"}, out.RowLabels())
}

func TestSubsetSummarySpansFullAxis(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Total(prettytab.WithSubset("A"))
	out, err := s.FormattedTable()
	require.NoError(t, err)

	v, ok := out.Cell("Total", "A")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	// B is outside the subset but still present, with an empty value.
	v, ok = out.Cell("Total", "B")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestExcludeComputesSubset(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).Total(prettytab.WithExclude("A"))
	out, err := s.FormattedTable()
	require.NoError(t, err)

	v, ok := out.Cell("Total", "A")
	require.True(t, ok)
	assert.Nil(t, v)
	v, ok = out.Cell("Total", "B")
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
}

func TestRenderIsSideEffectFree(t *testing.T) {
	t.Parallel()

	tbl := sampleTable(t)
	s := prettytab.New(tbl).Total().AsPercent(prettytab.WithSubset("A"))

	first, err := s.Marshal(prettytab.FormatCSV)
	require.NoError(t, err)
	second, err := s.Marshal(prettytab.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, first, second, "consecutive renders must be identical")

	// The stored table is untouched.
	assert.Equal(t, []string{"x", "y"}, tbl.RowLabels())
	v, ok := tbl.Cell("x", "A")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestAsPercentSubsetOnly(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable(
		[]string{"x"},
		[]string{"A", "B"},
		[][]any{{0.5, 0.25}},
	)
	require.NoError(t, err)

	tree, err := prettytab.New(tbl).AsPercent(prettytab.WithSubset("A")).Render()
	require.NoError(t, err)

	// Body row: row heading, A, B.
	row := tree.Body[0]
	require.Len(t, row, 3)
	assert.Equal(t, "50%", row[1].Display)
	assert.Equal(t, "0.25", row[2].Display, "column B must be unchanged")
}

func TestEmptySubsetFormatterIsNoop(t *testing.T) {
	t.Parallel()

	plain, err := prettytab.New(sampleTable(t)).Marshal(prettytab.FormatCSV)
	require.NoError(t, err)
	formatted, err := prettytab.New(sampleTable(t)).
		AsPercent(prettytab.WithSubset("Z")).
		Marshal(prettytab.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, plain, formatted)
}

func TestExcludeNarrowsFormatterSubset(t *testing.T) {
	t.Parallel()

	tree, err := prettytab.New(sampleTable(t)).
		AsPercent(prettytab.WithSubset("A", "B"), prettytab.WithExclude("B")).
		Render()
	require.NoError(t, err)

	row := tree.Body[0]
	assert.Equal(t, "100%", row[1].Display)
	assert.Equal(t, "2.00", row[2].Display)
}

func TestInvalidFormatterAxisFailsRender(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).FormatCells(
		func(v any) any { return v },
		prettytab.WithAxis(prettytab.AxisBoth),
	)
	_, err := s.Render()
	assert.ErrorIs(t, err, prettytab.ErrInvalidAxis)
}

func TestRowAxisFormatter(t *testing.T) {
	t.Parallel()

	tree, err := prettytab.New(sampleTable(t)).
		AsPercent(prettytab.WithAxis(prettytab.AxisRows), prettytab.WithSubset("x")).
		Render()
	require.NoError(t, err)

	assert.Equal(t, "100%", tree.Body[0][1].Display)
	assert.Equal(t, "200%", tree.Body[0][2].Display)
	assert.Equal(t, "3.00", tree.Body[1][1].Display)
}

func TestMultiSummaryLengthMismatch(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).MultiSummary(
		[]prettytab.Aggregator{prettytab.Sum},
		[]string{"Total", "Average"},
		prettytab.AxisColumns,
	)
	// The chain stays usable; the error surfaces at render.
	s = s.Total()
	_, err := s.Render()
	assert.ErrorIs(t, err, prettytab.ErrLengthMismatch)
	assert.ErrorIs(t, s.Err(), prettytab.ErrLengthMismatch)
}

func TestNullTextReplacement(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable(
		[]string{"x", "y"},
		[]string{"A"},
		[][]any{{math.NaN()}, {nil}},
	)
	require.NoError(t, err)

	tree, err := prettytab.New(tbl, prettytab.WithNullText("N/A")).Render()
	require.NoError(t, err)
	assert.Equal(t, "N/A", tree.Body[0][1].Display)
	assert.Equal(t, "N/A", tree.Body[1][1].Display)

	out, err := prettytab.New(tbl, prettytab.WithNullText("N/A")).FormattedTable()
	require.NoError(t, err)
	v, ok := out.Cell("x", "A")
	require.True(t, ok)
	assert.Equal(t, "N/A", v)
}

func TestAsCurrencyUnknownCode(t *testing.T) {
	t.Parallel()

	s := prettytab.New(sampleTable(t)).AsCurrency("ZZ")
	_, err := s.Render()
	assert.ErrorIs(t, err, prettytab.ErrUnknownCurrency)
}

func TestAsCurrencyUSD(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable([]string{"x"}, []string{"A"}, [][]any{{1234.5}})
	require.NoError(t, err)

	tree, err := prettytab.New(tbl).AsCurrency("USD").Render()
	require.NoError(t, err)
	display := tree.Body[0][1].Display
	assert.Contains(t, display, "$")
	assert.NotEqual(t, "1234.50", display)
}

func TestAsUnitSuffix(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable([]string{"x"}, []string{"A"}, [][]any{{2.0}})
	require.NoError(t, err)

	tree, err := prettytab.New(tbl).
		AsUnit(" kg", prettytab.WithSuffix(), prettytab.WithDigits(1)).
		Render()
	require.NoError(t, err)
	assert.Equal(t, "2.0 kg", tree.Body[0][1].Display)
}

func TestAsNumberGrouping(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable([]string{"x"}, []string{"A"}, [][]any{{1234.5}})
	require.NoError(t, err)

	tree, err := prettytab.New(tbl, prettytab.WithLocale(language.AmericanEnglish)).
		AsNumber().
		Render()
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", tree.Body[0][1].Display)
}

func TestPlainPercentFormatter(t *testing.T) {
	t.Parallel()

	tbl, err := prettytab.NewTable([]string{"x"}, []string{"A"}, [][]any{{0.125}})
	require.NoError(t, err)

	tree, err := prettytab.New(tbl, prettytab.WithPercentFormatter(prettytab.PlainPercent)).
		AsPercent(prettytab.WithDigits(1)).
		Render()
	require.NoError(t, err)
	assert.Equal(t, "12.5%", tree.Body[0][1].Display)
}

func TestCustomCellFunc(t *testing.T) {
	t.Parallel()

	tree, err := prettytab.New(sampleTable(t)).
		FormatCells(func(v any) any {
			if f, ok := v.(float64); ok && f > 2 {
				return "big"
			}
			return v
		}).
		Render()
	require.NoError(t, err)
	assert.Equal(t, "1.00", tree.Body[0][1].Display)
	assert.Equal(t, "big", tree.Body[1][1].Display)
}

func TestSummaryCellsAreFormatted(t *testing.T) {
	t.Parallel()

	tree, err := prettytab.New(sampleTable(t)).
		Total().
		AsPercent(prettytab.WithSubset("A")).
		Render()
	require.NoError(t, err)

	// Formatters run after the merge, so the Total row is formatted too.
	totalRow := tree.Body[2]
	assert.Equal(t, "Total", totalRow[0].Display)
	assert.Equal(t, "400%", totalRow[1].Display)
}

func TestRenderTreeShapeAndStyles(t *testing.T) {
	t.Parallel()

	tree, err := prettytab.New(sampleTable(t), prettytab.WithCaption("Sales")).
		Total().
		Summary(prettytab.Sum, "Row Total", prettytab.AxisRows).
		Render()
	require.NoError(t, err)

	require.Len(t, tree.Head, 1)
	assert.Len(t, tree.Head[0], 4, "corner + 2 columns + summary column")
	require.Len(t, tree.Body, 3)
	assert.Len(t, tree.Body[0], 4)
	assert.Equal(t, "Sales", tree.Caption)

	selectors := make([]string, 0, len(tree.Styles))
	for _, st := range tree.Styles {
		selectors = append(selectors, st.Selector)
	}
	assert.Contains(t, selectors, "tr:nth-child(3)", "summary row after 2 data rows")
	assert.Contains(t, selectors, "td:nth-child(4)", "summary column after heading + 2 data columns")
}

func TestHeaderMergeWithIndexName(t *testing.T) {
	t.Parallel()

	tbl := sampleTable(t).WithNames("City", "")
	tree, err := prettytab.New(tbl).Render()
	require.NoError(t, err)

	require.Len(t, tree.Head, 1, "index-name row merges into the label row")
	assert.Equal(t, "City", tree.Head[0][0].Value)
	assert.Equal(t, "A", tree.Head[0][1].Value)
}

func TestHeaderMergeAmbiguousKeepsBothRows(t *testing.T) {
	t.Parallel()

	tbl := sampleTable(t).WithNames("City", "Metric")
	tree, err := prettytab.New(tbl).Render()
	require.NoError(t, err)

	assert.Len(t, tree.Head, 2, "two non-blank corners cannot merge")
}

func TestHTMLOutput(t *testing.T) {
	t.Parallel()

	html, err := prettytab.New(sampleTable(t), prettytab.WithCaption("Q1 <Sales>")).
		Total().
		HTML()
	require.NoError(t, err)

	assert.Contains(t, html, `<table id="T_`)
	assert.Contains(t, html, `class="dataframe"`)
	assert.Contains(t, html, "tr:nth-child(3)")
	assert.Contains(t, html, "row_heading")
	assert.Contains(t, html, "Q1 &lt;Sales&gt;", "caption is escaped")
	assert.Contains(t, html, "background: #8883;")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range prettytab.Formats() {
		parsed, err := prettytab.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := prettytab.ParseFormat("pdf")
	assert.ErrorIs(t, err, prettytab.ErrUnsupportedFormat)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t)).Total().Marshal(prettytab.FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + 2 data rows + summary row")
	assert.Equal(t, []string{"", "A", "B"}, records[0])
	assert.Equal(t, []string{"Total", "4.00", "6.00"}, records[3])
}

func TestWriteCSVWithoutIndex(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t), prettytab.WithoutIndex()).Marshal(prettytab.FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, records[0])
	assert.Equal(t, []string{"1.00", "2.00"}, records[1])
}

func TestWriteTextTable(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t), prettytab.WithCaption("2 rows")).
		Total().
		Marshal(prettytab.FormatTable)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "Total")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "2 rows"))

	// Separator lines: header rule plus the summary rule.
	assert.Equal(t, 2, strings.Count(out, "├"))
}

func TestWriteTextTableASCII(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t), prettytab.WithBorder(prettytab.BorderASCII)).
		Marshal(prettytab.FormatTable)
	require.NoError(t, err)
	assert.Contains(t, string(data), "+")
	assert.NotContains(t, string(data), "╭")
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t)).Marshal(prettytab.FormatMarkdown)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "|"))
	assert.Contains(t, lines[1], "--:")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t)).Total().Marshal(prettytab.FormatJSON)
	require.NoError(t, err)

	var doc struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			Cells   []string `json:"cells"`
			Summary bool     `json:"summary"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []string{"", "A", "B"}, doc.Columns)
	require.Len(t, doc.Rows, 3)
	assert.False(t, doc.Rows[0].Summary)
	assert.True(t, doc.Rows[2].Summary)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	data, err := prettytab.New(sampleTable(t)).Marshal(prettytab.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "columns:")
	assert.Contains(t, string(data), "- A")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	t.Parallel()

	err := prettytab.New(sampleTable(t)).Write(&strings.Builder{}, prettytab.Format("pdf"))
	assert.ErrorIs(t, err, prettytab.ErrUnsupportedFormat)
}

func TestPrettyGlobalsIsCSS(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(prettytab.PrettyGlobals, `<style type="text/css">`))
	assert.Contains(t, prettytab.PrettyGlobals, ".dataframe")
}
