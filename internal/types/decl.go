package types

import "fmt"

// DeclKind tags the variant held by a Decl.
type DeclKind uint8

const (
	DeclWidth DeclKind = iota + 1
	DeclAlias
	DeclComposite
)

func (k DeclKind) String() string {
	switch k {
	case DeclWidth:
		return "width"
	case DeclAlias:
		return "alias"
	case DeclComposite:
		return "composite"
	}
	return "invalid"
}

// Member is one field of a composite; Type is a canonical type string.
type Member struct {
	Name string
	Type string
}

// Decl is an entry of the type table: Width(n) | Alias(target) | Composite(members).
// Composite members are ordered from bit 0 upward.
type Decl struct {
	Kind    DeclKind
	Width   int
	Target  string
	Members []Member
}

// Unresolved is the width of a type that could not be resolved.
const Unresolved = -1

func Width(n int) Decl          { return Decl{Kind: DeclWidth, Width: n} }
func Alias(target string) Decl  { return Decl{Kind: DeclAlias, Target: target} }
func Composite(m []Member) Decl { return Decl{Kind: DeclComposite, Members: m} }
func UnresolvedDecl() Decl      { return Width(Unresolved) }

// Refs lists the type names this declaration depends on.
func (d Decl) Refs() []string {
	switch d.Kind {
	case DeclAlias:
		return []string{d.Target}
	case DeclComposite:
		out := make([]string, 0, len(d.Members))
		for _, m := range d.Members {
			out = append(out, m.Type)
		}
		return out
	}
	return nil
}

func (d Decl) String() string {
	switch d.Kind {
	case DeclWidth:
		return fmt.Sprintf("width(%d)", d.Width)
	case DeclAlias:
		return fmt.Sprintf("alias(%s)", d.Target)
	case DeclComposite:
		return fmt.Sprintf("composite%v", d.Members)
	}
	return "invalid"
}
