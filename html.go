package prettytab

import (
	"fmt"
	"html"
	"io"
	"slices"
	"strings"
)

// PrettyGlobals is a CSS block that restyles every rendered table in a
// notebook at once. Some notebook hosts advise against raw HTML injection;
// per-table styling through [New] needs no injection and is the safer
// default.
const PrettyGlobals = `<style type="text/css">
    .dataframe * {border-color: #c0c0c0 !important;}
    .dataframe th {background: #eee;}
    .dataframe td {
        background: #fff;
        text-align: right;
        min-width: 5em;
    }
    .dataframe-summary-row tr:last-child,
    .dataframe-summary-col td:last-child {
        background: #eee;
        font-weight: 500;
    }
</style>`

// WriteHTML serializes the render tree as a scoped <style> block followed by
// a <table>. Every selector is prefixed with the table id, so multiple
// tables on one page do not collide.
func (t *RenderTree) WriteHTML(w io.Writer) error {
	if err := t.writeStyles(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<table id=%q class=\"dataframe\">\n", "T_"+t.ID); err != nil {
		return err
	}
	if t.Caption != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(t.Caption)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	for _, row := range t.Head {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, cell := range row {
			if _, err := fmt.Fprintf(w, "      <th class=%q>%s</th>\n",
				strings.Join(cell.Classes, " "), html.EscapeString(cell.Value)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range t.Body {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, cell := range row {
			tag := "td"
			if slices.Contains(cell.Classes, "row_heading") {
				tag = "th"
			}
			if _, err := fmt.Fprintf(w, "      <%s class=%q>%s</%s>\n",
				tag, strings.Join(cell.Classes, " "), html.EscapeString(cell.Display), tag); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func (t *RenderTree) writeStyles(w io.Writer) error {
	if len(t.Styles) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, `<style type="text/css">`); err != nil {
		return err
	}
	for _, style := range t.Styles {
		props := make([]string, len(style.Props))
		for i, p := range style.Props {
			props[i] = fmt.Sprintf("%s: %s;", p.Attr, p.Value)
		}
		if _, err := fmt.Fprintf(w, "  #T_%s %s { %s }\n",
			t.ID, style.Selector, strings.Join(props, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</style>")
	return err
}

// HTML renders the composed table and returns it as an HTML string. It is
// shorthand for [Styler.Render] followed by [RenderTree.WriteHTML].
func (s *Styler) HTML() (string, error) {
	tree, err := s.Render()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tree.WriteHTML(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
