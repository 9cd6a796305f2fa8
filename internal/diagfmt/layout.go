package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mslayout/internal/hier"
	"mslayout/internal/layout"
)

// LayoutSource is what the layout dump reads; *resolver.Resolver satisfies it.
type LayoutSource interface {
	TopLevel() string
	HasWrapper() bool
	Inputs() []hier.Port
	Outputs() []hier.Port
	Registers() []hier.Register
	Types() []string
	Layout(typ string) (layout.Layout, bool)
	BVIs() []string
}

// LeafJSON is a layout leaf with its absolute bit range.
type LeafJSON struct {
	Path  string `json:"path"`
	Width int    `json:"width"`
	Lo    int    `json:"lo"`
	Hi    int    `json:"hi"`
}

type TypeJSON struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Leaves []LeafJSON `json:"leaves,omitempty"`
}

type WireJSON struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Width int    `json:"width"`
}

// LayoutOutput is the JSON form of `mslayout dump`.
type LayoutOutput struct {
	Top       string     `json:"top"`
	Wrapper   bool       `json:"wrapper"`
	Inputs    []WireJSON `json:"inputs"`
	Outputs   []WireJSON `json:"outputs"`
	Registers []WireJSON `json:"registers"`
	Types     []TypeJSON `json:"types"`
	BVIs      []string   `json:"bvi"`
}

func widthOf(src LayoutSource, typ string) int {
	if l, ok := src.Layout(typ); ok {
		return l.Width()
	}
	return -1
}

// leafRanges раскладывает листья по битам, начиная с нулевого.
func leafRanges(l layout.Layout) []LeafJSON {
	if !l.Composite {
		return nil
	}
	out := make([]LeafJSON, 0, len(l.Leaves))
	lo := 0
	for _, leaf := range l.Leaves {
		out = append(out, LeafJSON{Path: leaf.Path, Width: leaf.Width, Lo: lo, Hi: lo + leaf.Width - 1})
		lo += leaf.Width
	}
	return out
}

// BuildLayoutOutput collects the dump without serializing it.
func BuildLayoutOutput(src LayoutSource) LayoutOutput {
	out := LayoutOutput{
		Top:     src.TopLevel(),
		Wrapper: src.HasWrapper(),
		BVIs:    src.BVIs(),
	}
	for _, p := range src.Inputs() {
		out.Inputs = append(out.Inputs, WireJSON{p.Name, p.Type, widthOf(src, p.Type)})
	}
	for _, p := range src.Outputs() {
		out.Outputs = append(out.Outputs, WireJSON{p.Name, p.Type, widthOf(src, p.Type)})
	}
	for _, r := range src.Registers() {
		out.Registers = append(out.Registers, WireJSON{r.Path, r.Type, widthOf(src, r.Type)})
	}
	for _, t := range src.Types() {
		l, _ := src.Layout(t)
		out.Types = append(out.Types, TypeJSON{Name: t, Width: l.Width(), Leaves: leafRanges(l)})
	}
	return out
}

// FormatLayoutJSON writes the dump as indented JSON.
func FormatLayoutJSON(w io.Writer, src LayoutSource) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildLayoutOutput(src))
}

// FormatLayoutPretty writes the dump as aligned text tables.
func FormatLayoutPretty(w io.Writer, src LayoutSource, useColor bool) error {
	head := color.New(color.Bold)
	dim := color.New(color.Faint)
	if useColor {
		head.EnableColor()
		dim.EnableColor()
	} else {
		head.DisableColor()
		dim.DisableColor()
	}
	out := BuildLayoutOutput(src)

	wrapper := "no"
	if out.Wrapper {
		wrapper = "yes (wires carry res_)"
	}
	fmt.Fprintf(w, "%s %s\n%s %s\n", head.Sprint("top:"), out.Top, head.Sprint("wrapper:"), wrapper)
	if len(out.BVIs) > 0 {
		fmt.Fprintf(w, "%s %v\n", head.Sprint("bvi:"), out.BVIs)
	}

	sections := []struct {
		title string
		wires []WireJSON
	}{
		{"inputs", out.Inputs},
		{"outputs", out.Outputs},
		{"registers", out.Registers},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", head.Sprint(s.title))
		rows := make([][]string, 0, len(s.wires))
		for _, wr := range s.wires {
			rows = append(rows, []string{wr.Name, wr.Type, widthText(wr.Width)})
		}
		writeTable(w, "  ", rows)
	}

	fmt.Fprintf(w, "\n%s\n", head.Sprint("types"))
	for _, t := range out.Types {
		fmt.Fprintf(w, "  %s %s\n", t.Name, dim.Sprint(widthText(t.Width)))
		rows := make([][]string, 0, len(t.Leaves))
		for _, leaf := range t.Leaves {
			rows = append(rows, []string{bitRange(leaf), leaf.Path, strconv.Itoa(leaf.Width)})
		}
		writeTable(w, "    ", rows)
	}
	return nil
}

func widthText(n int) string {
	if n < 0 {
		return "unresolved"
	}
	return strconv.Itoa(n)
}

func bitRange(l LeafJSON) string {
	if l.Width <= 1 {
		return "[" + strconv.Itoa(l.Lo) + "]"
	}
	return "[" + strconv.Itoa(l.Hi) + ":" + strconv.Itoa(l.Lo) + "]"
}

// writeTable выравнивает колонки по ширине на экране, а не по байтам.
func writeTable(w io.Writer, indent string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "%s(none)\n", indent)
		return
	}
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		fmt.Fprint(w, indent)
		for i, cell := range row {
			if i == len(row)-1 {
				fmt.Fprintln(w, cell)
				break
			}
			fmt.Fprint(w, runewidth.FillRight(cell, widths[i]), "  ")
		}
	}
}
