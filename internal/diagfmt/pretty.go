package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mslayout/internal/diag"
	"mslayout/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i := range bag.Items() {
		d := &bag.Items()[i]
		loc := location(fs, d.Primary, opts.PathMode, opts.BaseDir)
		fmt.Fprintf(w, "%s%s %s: %s\n",
			loc, pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()), d.Message)
		if !d.Primary.Empty() || d.Primary.Start > 0 {
			writeSnippet(w, fs, d.Primary, int(opts.Context), pal)
		}

		// Тайминги без заметок бессмысленны — показываем их всегда.
		if (opts.ShowNotes || d.Code == diag.ObsTimings) && len(d.Notes) > 0 {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode, opts.BaseDir), n.Msg)
			}
		}
		if opts.ShowFixes {
			writeFixes(w, fs, d.Fixes, opts, pal)
		}
	}
}

// location рендерит "path:line:col: " или пустую строку, если span никуда не указывает.
func location(fs *source.FileSet, sp source.Span, mode PathMode, baseDir string) string {
	f := fileOf(fs, sp.File)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d: ", formatPath(f, mode, baseDir), start.Line, start.Col)
}

func fileOf(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fileOf(fs, sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln is bounded by the line index
		if ln != int(start.Line) && text == "" {
			continue
		}
		text = expandTabs(text)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != int(start.Line) {
			continue
		}
		raw := f.GetLine(start.Line)
		from := min(int(start.Col)-1, len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(max(int(end.Col)-1, from), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
	}
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func writeFixes(w io.Writer, fs *source.FileSet, fixes []diag.Fix, opts PrettyOpts, pal palette) {
	for i, fx := range fixes {
		fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprintf("fix #%d:", i+1), fx.Title)
		for _, e := range fx.Edits {
			fmt.Fprintf(w, "    edit %sapply=%q\n", location(fs, e.Span, opts.PathMode, opts.BaseDir), e.NewText)
			if !opts.ShowPreview {
				continue
			}
			pv, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range pv.before {
				fmt.Fprintf(w, "      - %s\n", l)
			}
			for _, l := range pv.after {
				fmt.Fprintf(w, "      + %s\n", l)
			}
		}
	}
}
