package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mslayout/internal/ast"
	"mslayout/internal/layout"
	"mslayout/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed design:
// 1) every module, interface and typedef span is non-empty and points into sf
// 2) every span ends within the file content
// 3) instance spans are contained in their module span
func CheckSpanInvariants(d *ast.Design, sf *source.File) error {
	if d == nil || sf == nil {
		return fmt.Errorf("nil design or file")
	}
	if d.File != sf.ID {
		return fmt.Errorf("design points to different file id: got=%d want=%d", d.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	for _, m := range d.Modules.Slice() {
		if err := check("module "+m.MkName, m.Span); err != nil {
			return err
		}
		for _, inst := range m.Instances {
			if err := check("instance "+inst.Name, inst.Span); err != nil {
				return err
			}
			if inst.Span.Start < m.Span.Start || inst.Span.End > m.Span.End {
				return fmt.Errorf("instance %s span %v is outside module span %v", inst.Name, inst.Span, m.Span)
			}
		}
	}
	for _, ifc := range d.Interfaces.Slice() {
		if err := check("interface "+ifc.Name.String(), ifc.Span); err != nil {
			return err
		}
	}
	for _, td := range d.Typedefs.Slice() {
		if err := check("typedef "+td.Name.String(), td.Span); err != nil {
			return err
		}
	}
	return nil
}

// LayoutView — то, что CheckLayoutInvariants читает у резолвера.
type LayoutView interface {
	Types() []string
	Layout(typ string) (layout.Layout, bool)
	Width(typ string) int
}

// CheckLayoutInvariants verifies the flattened layouts against the width query:
// composite widths equal the sum of their leaves, leaves are resolved and
// leaf paths are unique within a type.
func CheckLayoutInvariants(v LayoutView) error {
	for _, typ := range v.Types() {
		l, ok := v.Layout(typ)
		if !ok {
			return fmt.Errorf("type %s listed but has no layout", typ)
		}
		if l.IsScalar() {
			if got := v.Width(typ); got != l.Scalar {
				return fmt.Errorf("width(%s) = %d, layout says %d", typ, got, l.Scalar)
			}
			continue
		}
		sum := 0
		seen := make(map[string]struct{}, len(l.Leaves))
		for _, leaf := range l.Leaves {
			if leaf.Width < 0 {
				return fmt.Errorf("type %s has unresolved leaf %s", typ, leaf.Path)
			}
			if _, dup := seen[leaf.Path]; dup {
				return fmt.Errorf("type %s has duplicate leaf %s", typ, leaf.Path)
			}
			seen[leaf.Path] = struct{}{}
			sum += leaf.Width
		}
		if got := v.Width(typ); got != sum {
			return fmt.Errorf("width(%s) = %d, leaves sum to %d", typ, got, sum)
		}
	}
	return nil
}
