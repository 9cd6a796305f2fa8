package ast

import (
	"mslayout/internal/source"
	"mslayout/internal/types"
)

type TypedefKind uint8

const (
	TypedefStruct TypedefKind = iota + 1
	TypedefEnum
	TypedefSynonym
)

func (k TypedefKind) String() string {
	switch k {
	case TypedefStruct:
		return "struct"
	case TypedefEnum:
		return "enum"
	case TypedefSynonym:
		return "synonym"
	}
	return "invalid"
}

// Typedef is one recognized type declaration. Fields keep declaration order
// (most significant member first).
type Typedef struct {
	Kind   TypedefKind
	Name   types.Ref
	Fields []Field     // struct
	Labels []EnumLabel // enum
	Target types.Ref   // synonym
	Span   source.Span
}

type Field struct {
	Type types.Ref
	Name string
}

// EnumLabel carries the numeric id the label encodes to, explicit or auto-incremented.
type EnumLabel struct {
	Name     string
	Value    uint64
	Explicit bool
}
