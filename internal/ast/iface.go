package ast

import (
	"mslayout/internal/source"
	"mslayout/internal/types"
)

type Interface struct {
	Name    types.Ref
	Methods []Method
	Span    source.Span
}

// Method is a method prototype inside an interface body.
type Method struct {
	Ret  types.Ref
	Name string
	Args []Arg
	Span source.Span
}

type Arg struct {
	Type types.Ref
	Name string
}

// IsAction reports whether the method returns Action (an input-only method).
func (m *Method) IsAction() bool {
	return m.Ret.Name == types.ActionName && len(m.Ret.Params) == 0
}
