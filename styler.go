package prettytab

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Sentinel errors for programmatic error handling.
var (
	ErrShapeMismatch     = errors.New("cell shape does not match labels")
	ErrInvalidAxis       = errors.New("invalid axis")
	ErrLengthMismatch    = errors.New("functions and titles length mismatch")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnknownCurrency   = errors.New("unknown currency code")
)

// Axis selects the direction of a summary or formatter.
type Axis int

const (
	// AxisColumns applies a function down each column, producing a summary
	// row. Formatters with this axis target column labels.
	AxisColumns Axis = iota
	// AxisRows applies a function across each row, producing a summary
	// column. Formatters with this axis target row labels.
	AxisRows
	// AxisBoth summarizes both axes independently. Not valid for formatters.
	AxisBoth
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisColumns:
		return "columns"
	case AxisRows:
		return "rows"
	case AxisBoth:
		return "both"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Prop is a single CSS property.
type Prop struct {
	Attr  string `json:"attr" yaml:"attr"`
	Value string `json:"value" yaml:"value"`
}

// Style pairs a CSS selector with its properties. Selectors are scoped to
// the rendered table's id when serialized to HTML.
type Style struct {
	Selector string `json:"selector" yaml:"selector"`
	Props    []Prop `json:"props" yaml:"props"`
}

// defaultBackground is a transparent grey that works on both light and dark
// notebook themes.
const defaultBackground = "#8883"

const defaultBorderColor = "#c0c0c0"

// headerProps styles header rows and columns; summary cells reuse it so
// totals read like headers.
var headerProps = []Prop{
	{Attr: "background", Value: defaultBackground},
	{Attr: "font-weight", Value: "500"},
}

var summaryProps = headerProps

func baseStyles() []Style {
	return []Style{
		{Selector: "th", Props: headerProps},
		{Selector: "tr", Props: []Prop{{Attr: "background", Value: "none"}}},
		{Selector: "td", Props: []Prop{
			{Attr: "text-align", Value: "right"},
			{Attr: "min-width", Value: "3em"},
		}},
		{Selector: "*", Props: []Prop{{Attr: "border-color", Value: defaultBorderColor}}},
	}
}

func noIndexStyles() []Style {
	return []Style{
		{Selector: ".row_heading", Props: []Prop{{Attr: "display", Value: "none"}}},
		{Selector: ".blank", Props: []Prop{{Attr: "display", Value: "none"}}},
	}
}

// Package-level defaults, read once when a Styler is constructed. They are
// plain variables and are not synchronized; set them during program
// initialization. Per-instance overrides go through [WithLocale] and
// [WithPercentFormatter].
var (
	// DefaultLocale is the locale used by currency, unit, and percent
	// formatting when no per-table or per-call locale is given.
	DefaultLocale = language.AmericanEnglish

	// DefaultPercentFormatter is the percent strategy new Stylers start
	// with. [LocalePercent] formats through the locale machinery;
	// [PlainPercent] is a fixed "NN.N%" rendering.
	DefaultPercentFormatter PercentFunc = LocalePercent

	// DefaultPrecision is the display precision for float cells when
	// [WithPrecision] is not given.
	DefaultPrecision = 2
)

// summaryEntry is one pending summary row or column: a title and its
// aggregated values keyed by the opposite axis's labels. Entries are
// created by summary calls and merged into a working copy of the table at
// render time; they are never mutated after creation.
type summaryEntry struct {
	title  string
	values map[string]any
}

// formatter is one registered cell-formatting record, applied lazily in
// insertion order at render time.
type formatter struct {
	subset  []string
	exclude []string
	axis    Axis
	fn      CellFunc
}

// CellFunc transforms a cell value into its display representation.
type CellFunc func(v any) any

// Styler composes summary rows/columns and cell formatters over a [Table]
// and renders the result. It owns the table and a delegate output layer;
// all registration methods mutate the Styler and return it, so calls chain:
//
//	s := prettytab.New(tbl).Total().Average().AsCurrency("USD")
//	html, err := s.HTML()
//
// A registration that fails (mismatched lengths, unknown currency) records
// the error; the first recorded error surfaces from the next Render, Write,
// or FormattedTable call and no output is produced.
type Styler struct {
	table       *Table
	summaryRows []summaryEntry
	summaryCols []summaryEntry
	formatters  []formatter
	styles      []Style

	precision int
	caption   string
	showIndex bool
	nullText  string
	hasNull   bool
	border    BorderStyle
	locale    language.Tag
	percentFn PercentFunc
	id        string

	err error
}

// Option configures a Styler at construction.
type Option func(*Styler)

// WithPrecision sets the display precision for float cells and the default
// precision of registered formatters.
func WithPrecision(p int) Option {
	return func(s *Styler) { s.precision = p }
}

// WithCaption attaches a caption to the rendered table.
func WithCaption(caption string) Option {
	return func(s *Styler) { s.caption = caption }
}

// WithoutIndex hides the row heading column in HTML output and drops it from
// tabular output.
func WithoutIndex() Option {
	return func(s *Styler) { s.showIndex = false }
}

// WithNullText replaces missing values (nil cells, NaN floats) with the
// given literal in rendered output.
func WithNullText(text string) Option {
	return func(s *Styler) {
		s.nullText = text
		s.hasNull = true
	}
}

// WithStyles appends extra CSS styles after the base styles.
func WithStyles(styles ...Style) Option {
	return func(s *Styler) { s.styles = append(s.styles, styles...) }
}

// WithLocale sets the locale used by currency, unit, and percent formatting
// for this table.
func WithLocale(tag language.Tag) Option {
	return func(s *Styler) { s.locale = tag }
}

// WithPercentFormatter sets the percent strategy for this table's
// subsequent AsPercent calls.
func WithPercentFormatter(fn PercentFunc) Option {
	return func(s *Styler) { s.percentFn = fn }
}

// WithBorder sets the border style used by the text table output format.
func WithBorder(b BorderStyle) Option {
	return func(s *Styler) { s.border = b }
}

// New wraps a table in a Styler. The table is owned by the Styler from this
// point on; rendering never mutates it.
func New(t *Table, opts ...Option) *Styler {
	s := &Styler{
		table:     t,
		styles:    baseStyles(),
		precision: DefaultPrecision,
		showIndex: true,
		border:    BorderRounded,
		locale:    DefaultLocale,
		percentFn: DefaultPercentFormatter,
		id:        strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.showIndex {
		s.styles = append(s.styles, noIndexStyles()...)
	}
	return s
}

// Err returns the first error recorded by a registration call, or nil.
func (s *Styler) Err() error { return s.err }

// CallOption refines a single summary or formatter registration.
type CallOption func(*callConfig)

type callConfig struct {
	subset    []string
	exclude   []string
	title     string
	axis      Axis
	hasAxis   bool
	precision int
	hasPrec   bool
	locale    language.Tag
	hasLocale bool
	suffix    bool
}

// WithSubset restricts a summary or formatter to the given labels. Labels
// outside the subset receive nil in summaries and are left unformatted.
func WithSubset(labels ...string) CallOption {
	return func(c *callConfig) { c.subset = labels }
}

// WithExclude removes labels from a summary or formatter's target set. When
// no subset is given the target becomes all labels minus the excluded ones;
// otherwise exclude narrows the subset.
func WithExclude(labels ...string) CallOption {
	return func(c *callConfig) { c.exclude = labels }
}

// WithTitle overrides the default title of a convenience summary
// (Total, Average, Median, Max, Min).
func WithTitle(title string) CallOption {
	return func(c *callConfig) { c.title = title }
}

// WithAxis sets a formatter's axis. The default is [AxisColumns]. An axis
// other than AxisColumns or AxisRows fails the render that applies the
// formatter.
func WithAxis(axis Axis) CallOption {
	return func(c *callConfig) {
		c.axis = axis
		c.hasAxis = true
	}
}

// WithDigits overrides the precision of a single formatter registration.
func WithDigits(n int) CallOption {
	return func(c *callConfig) {
		c.precision = n
		c.hasPrec = true
	}
}

// WithFormatLocale overrides the locale of a single formatter registration.
func WithFormatLocale(tag language.Tag) CallOption {
	return func(c *callConfig) {
		c.locale = tag
		c.hasLocale = true
	}
}

// WithSuffix places the unit or currency symbol after the number instead of
// before it. Applies to AsUnit and AsMoney.
func WithSuffix() CallOption {
	return func(c *callConfig) { c.suffix = true }
}

func newCallConfig(opts []CallOption) callConfig {
	var c callConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// MultiSummary adds one summary per function along the given axis.
// AxisColumns aggregates down each column and appends summary rows titled
// after titles, in order; AxisRows is symmetric and appends summary columns;
// AxisBoth recurses over both axes independently.
//
// With [WithSubset], labels outside the subset get nil in that summary, so
// the summary still spans the full axis. [WithExclude] without a subset
// targets all labels minus the excluded ones.
//
// Titles must be unique per axis: the merge step blanks the corner cell at
// every (summary row title, summary column title) pair by label, and a
// duplicated title would blank more than its own corners.
func (s *Styler) MultiSummary(fns []Aggregator, titles []string, axis Axis, opts ...CallOption) *Styler {
	if s.err != nil {
		return s
	}
	if len(fns) != len(titles) {
		s.err = fmt.Errorf("%w: %d functions, %d titles", ErrLengthMismatch, len(fns), len(titles))
		return s
	}
	if axis == AxisBoth {
		return s.MultiSummary(fns, titles, AxisColumns, opts...).
			MultiSummary(fns, titles, AxisRows, opts...)
	}
	if axis != AxisColumns && axis != AxisRows {
		s.err = fmt.Errorf("%w: summary axis %s", ErrInvalidAxis, axis)
		return s
	}

	cfg := newCallConfig(opts)

	// Labels along which each function is evaluated: one result per column
	// for a summary row, one per row for a summary column.
	var names []string
	if axis == AxisColumns {
		names = s.table.ColLabels()
	} else {
		names = s.table.RowLabels()
	}

	subset := cfg.subset
	if subset == nil && cfg.exclude != nil {
		subset = difference(names, cfg.exclude)
	}

	for k, fn := range fns {
		values := make(map[string]any, len(names))
		for _, name := range names {
			if subset != nil && !slices.Contains(subset, name) {
				values[name] = nil
				continue
			}
			var series []float64
			if axis == AxisColumns {
				series = s.table.columnFloats(name)
			} else {
				series = s.table.rowFloats(name)
			}
			values[name] = fn(series)
		}
		entry := summaryEntry{title: titles[k], values: values}
		if axis == AxisColumns {
			s.summaryRows = append(s.summaryRows, entry)
		} else {
			s.summaryCols = append(s.summaryCols, entry)
		}
	}
	return s
}

// Summary adds a single summary row or column.
func (s *Styler) Summary(fn Aggregator, title string, axis Axis, opts ...CallOption) *Styler {
	return s.MultiSummary([]Aggregator{fn}, []string{title}, axis, opts...)
}

// Total adds a sum summary row titled "Total".
func (s *Styler) Total(opts ...CallOption) *Styler {
	return s.namedSummary(Sum, "Total", opts)
}

// Average adds a mean summary row titled "Average".
func (s *Styler) Average(opts ...CallOption) *Styler {
	return s.namedSummary(Mean, "Average", opts)
}

// Median adds a median summary row titled "Median".
func (s *Styler) Median(opts ...CallOption) *Styler {
	return s.namedSummary(Median, "Median", opts)
}

// Max adds a max summary row titled "Maximum".
func (s *Styler) Max(opts ...CallOption) *Styler {
	return s.namedSummary(Max, "Maximum", opts)
}

// Min adds a min summary row titled "Minimum".
func (s *Styler) Min(opts ...CallOption) *Styler {
	return s.namedSummary(Min, "Minimum", opts)
}

func (s *Styler) namedSummary(fn Aggregator, title string, opts []CallOption) *Styler {
	cfg := newCallConfig(opts)
	if cfg.title != "" {
		title = cfg.title
	}
	return s.Summary(fn, title, AxisColumns, opts...)
}

// difference returns the labels of a not present in b, preserving order.
func difference(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// intersect returns the labels of a present in b, preserving a's order.
func intersect(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, v := range a {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
