package ast

import (
	"mslayout/internal/source"
	"mslayout/internal/types"
)

// TopLevelWrapper is the constructor name msc gives the synthetic wrapper
// module it emits around a parametric top level.
const TopLevelWrapper = "mkTopLevel___"

// Module is a `module ... endmodule` block or an `import "BVI"` black box.
type Module struct {
	MkName    string    // constructor, backslash removed: "mkTop", "mkFoo#(8)"
	Ifc       types.Ref // interface type (last parenthesised group of the prototype)
	Instances []Instance
	BVI       bool
	Span      source.Span
}

// Instance is a submodule instantiation `Type name <- ctor...;`.
type Instance struct {
	Type types.Ref
	Name string
	Ctor string // first name of the right-hand side, backslash removed
	Span source.Span
}

// IsWrapper reports whether m is the synthetic top-level wrapper.
func (m *Module) IsWrapper() bool { return m.MkName == TopLevelWrapper }
