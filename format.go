package prettytab

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PercentFunc renders a fractional value (0.5 → fifty percent) as a display
// string at the given precision and locale.
type PercentFunc func(v float64, precision int, tag language.Tag) string

// LocalePercent formats percentages through the locale machinery, so
// separators and the percent sign follow the locale's conventions.
func LocalePercent(v float64, precision int, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Percent(v,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision)))
}

// PlainPercent formats percentages as a fixed "NN.N%" string, ignoring the
// locale.
func PlainPercent(v float64, precision int, _ language.Tag) string {
	return fmt.Sprintf("%.*f%%", precision, v*100)
}

// FormatCells registers an arbitrary cell formatter. The function is not
// applied immediately: it runs at render time, in registration order, on a
// working copy of the merged table. By default it targets every column;
// narrow it with [WithSubset], [WithExclude], and [WithAxis].
//
// A formatter whose subset resolves to no live labels is silently skipped,
// since a formatter may legitimately target labels absent from a particular
// table. An axis other than [AxisColumns] or [AxisRows] is a programming
// error and fails the render.
func (s *Styler) FormatCells(fn CellFunc, opts ...CallOption) *Styler {
	cfg := newCallConfig(opts)
	return s.addFormatter(fn, cfg)
}

func (s *Styler) addFormatter(fn CellFunc, cfg callConfig) *Styler {
	if s.err != nil {
		return s
	}
	axis := AxisColumns
	if cfg.hasAxis {
		axis = cfg.axis
	}
	s.formatters = append(s.formatters, formatter{
		subset:  cfg.subset,
		exclude: cfg.exclude,
		axis:    axis,
		fn:      fn,
	})
	return s
}

// resolve picks the locale and precision for one formatter registration:
// per-call override, else the instance setting.
func (s *Styler) resolveLocale(cfg callConfig) language.Tag {
	if cfg.hasLocale {
		return cfg.locale
	}
	return s.locale
}

func (s *Styler) resolvePrecision(cfg callConfig, fallback int) int {
	if cfg.hasPrec {
		return cfg.precision
	}
	return fallback
}

// numericFormatter wraps a float-to-string function into a CellFunc with the
// shared missing-value policy: nil and non-numeric cells pass through
// untouched, NaN becomes the configured null text when one is set.
func (s *Styler) numericFormatter(fn func(float64) string) CellFunc {
	return func(v any) any {
		f, ok := toFloat64(v)
		if !ok {
			return v
		}
		if isNull(v) {
			if s.hasNull {
				return s.nullText
			}
			return v
		}
		return fn(f)
	}
}

// AsPercent renders the targeted cells as percentages of one (0.5 → "50%").
// Precision defaults to 0; override with [WithDigits]. The active percent
// strategy comes from [WithPercentFormatter] or [DefaultPercentFormatter].
func (s *Styler) AsPercent(opts ...CallOption) *Styler {
	cfg := newCallConfig(opts)
	tag := s.resolveLocale(cfg)
	prec := s.resolvePrecision(cfg, 0)
	percentFn := s.percentFn
	return s.addFormatter(s.numericFormatter(func(f float64) string {
		return percentFn(f, prec, tag)
	}), cfg)
}

// AsCurrency renders the targeted cells as amounts of an ISO 4217 currency
// ("USD", "EUR"), with the symbol and digit grouping of the active locale.
// An unknown code records [ErrUnknownCurrency] and fails the next render.
func (s *Styler) AsCurrency(code string, opts ...CallOption) *Styler {
	if s.err != nil {
		return s
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		s.err = fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		return s
	}
	cfg := newCallConfig(opts)
	p := message.NewPrinter(s.resolveLocale(cfg))
	return s.addFormatter(s.numericFormatter(func(f float64) string {
		return p.Sprint(currency.Symbol(unit.Amount(f)))
	}), cfg)
}

// AsUnit renders the targeted cells as numbers tagged with a unit string,
// placed before the number by default or after it with [WithSuffix].
// Precision defaults to the table's display precision.
func (s *Styler) AsUnit(unit string, opts ...CallOption) *Styler {
	cfg := newCallConfig(opts)
	p := message.NewPrinter(s.resolveLocale(cfg))
	prec := s.resolvePrecision(cfg, s.precision)
	suffix := cfg.suffix
	return s.addFormatter(s.numericFormatter(func(f float64) string {
		n := p.Sprint(number.Decimal(f,
			number.MinFractionDigits(prec),
			number.MaxFractionDigits(prec)))
		if suffix {
			return n + unit
		}
		return unit + n
	}), cfg)
}

// AsNumber renders the targeted cells as locale-formatted numbers. It is
// AsUnit with an empty unit.
func (s *Styler) AsNumber(opts ...CallOption) *Styler {
	return s.AsUnit("", opts...)
}

// AsMoney renders the targeted cells with a literal currency symbol.
//
// Deprecated: use [Styler.AsCurrency] with an ISO code for locale-aware
// output. AsMoney remains for symbol-only formatting ("$", "£").
func (s *Styler) AsMoney(symbol string, opts ...CallOption) *Styler {
	return s.AsUnit(symbol, opts...)
}

// applyFormatters runs every registered formatter against the working table,
// in registration order. The target set is the subset intersected with the
// live labels, minus exclusions; an empty set skips the formatter.
func (s *Styler) applyFormatters(work *Table) error {
	for _, f := range s.formatters {
		var labels []string
		switch f.axis {
		case AxisColumns:
			labels = work.ColLabels()
		case AxisRows:
			labels = work.RowLabels()
		default:
			return fmt.Errorf("%w: formatter axis must be %s or %s, got %s",
				ErrInvalidAxis, AxisRows, AxisColumns, f.axis)
		}

		target := f.subset
		if target == nil {
			target = labels
		} else {
			target = intersect(target, labels)
			if len(target) == 0 {
				continue
			}
		}
		if f.exclude != nil {
			target = difference(target, f.exclude)
		}

		for _, label := range target {
			if f.axis == AxisColumns {
				for _, rowLabel := range work.RowLabels() {
					if v, ok := work.Cell(rowLabel, label); ok {
						work.set(rowLabel, label, f.fn(v))
					}
				}
			} else {
				for _, colLabel := range work.ColLabels() {
					if v, ok := work.Cell(label, colLabel); ok {
						work.set(label, colLabel, f.fn(v))
					}
				}
			}
		}
	}
	return nil
}

// display is the default display function: floats print at the configured
// precision, nil prints empty, everything else prints as-is.
func (s *Styler) display(v any) string {
	if v == nil {
		return ""
	}
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.*f", s.precision, n)
	case float32:
		return fmt.Sprintf("%.*f", s.precision, float64(n))
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}
