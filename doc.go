// Package prettytab composes summary rows and columns, per-cell display
// formatting, and HTML/CSS styling over a labeled two-dimensional table.
//
// It is a presentation layer, not a data engine: [Table] holds labeled
// cells in memory, [Styler] accumulates registrations, and rendering merges
// everything into a working copy and serializes it. The stored table is
// never mutated by rendering.
//
// # Summaries
//
// Summary calls aggregate down columns (producing rows appended below) or
// across rows (producing columns appended to the right):
//
//	tbl, _ := prettytab.NewTable(
//		[]string{"x", "y"},
//		[]string{"A", "B"},
//		[][]any{{1.0, 2.0}, {3.0, 4.0}},
//	)
//	s := prettytab.New(tbl).Total().Average()
//
// [Styler.MultiSummary] takes arbitrary [Aggregator] functions and an
// [Axis]; [Styler.Total], [Styler.Average], [Styler.Median], [Styler.Max],
// and [Styler.Min] are fixed-aggregation shortcuts. When a table carries
// both a summary row and a summary column, their shared corner cells are
// blanked: a total of totals is not a meaningful number.
//
// # Formatting
//
// Formatters register lazily and run at render time, in order:
//
//	s.AsCurrency("USD", prettytab.WithSubset("Revenue")).
//		AsPercent(prettytab.WithSubset("Growth"), prettytab.WithDigits(1))
//
// [Styler.AsPercent], [Styler.AsCurrency], [Styler.AsUnit], and
// [Styler.AsNumber] format through golang.org/x/text, so digit grouping,
// decimal marks, and currency symbols follow the locale ([WithLocale],
// [DefaultLocale]). [Styler.FormatCells] registers any custom [CellFunc].
//
// # Rendering
//
// [Styler.Render] produces a [RenderTree] (header rows, body cells with raw
// value and display string, CSS styles) for HTML serialization via
// [RenderTree.WriteHTML] or [Styler.HTML]. [Styler.FormattedTable] returns
// the merged, formatted [Table] for programmatic use. [Styler.Write]
// renders to any supported [Format]: html, table, markdown, csv, tsv, json,
// or yaml.
//
// # Errors
//
// Registration methods chain and never return errors directly; a failed
// registration records its error and the next render call returns it.
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrShapeMismatch] — cell grid does not match the labels
//   - [ErrInvalidAxis] — formatter axis outside rows/columns
//   - [ErrLengthMismatch] — MultiSummary functions/titles disagree
//   - [ErrUnknownCurrency] — AsCurrency with a bad ISO code
//   - [ErrUnsupportedFormat] — unknown output format string
//
// A formatter whose target labels are absent from the table is silently
// skipped instead; see [Styler.FormatCells].
package prettytab
