package types

import (
	"strconv"
	"strings"
)

// Ref is a reference to a (possibly parametric) BSV type: `Name` or `Name#(p1,p2,...)`.
type Ref struct {
	Name   string
	Params []Param
}

// Param is one parameter of a parametric type: a numeric literal (Type == nil)
// or a nested type reference.
type Param struct {
	Num  int
	Type *Ref
}

// NumParam makes a numeric parameter.
func NumParam(n int) Param { return Param{Num: n} }

// TypeParam makes a type parameter.
func TypeParam(r Ref) Param { return Param{Type: &r} }

// IsNum reports whether the parameter is a numeric literal.
func (p Param) IsNum() bool { return p.Type == nil }

func (p Param) String() string {
	if p.Type == nil {
		return strconv.Itoa(p.Num)
	}
	return p.Type.String()
}

// Named returns a non-parametric reference.
func Named(name string) Ref { return Ref{Name: name} }

// Apply returns name#(params...).
func Apply(name string, params ...Param) Ref {
	return Ref{Name: name, Params: params}
}

// IsZero reports whether r is the zero Ref (no name).
func (r Ref) IsZero() bool { return r.Name == "" }

// String renders the canonical spelling `Name#(p1,p2)` without whitespace.
// Canonical strings are the keys of every type table in the pipeline.
func (r Ref) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r Ref) write(b *strings.Builder) {
	b.WriteString(r.Name)
	if len(r.Params) == 0 {
		return
	}
	b.WriteString("#(")
	for i, p := range r.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		if p.Type == nil {
			b.WriteString(strconv.Itoa(p.Num))
		} else {
			p.Type.write(b)
		}
	}
	b.WriteByte(')')
}

// Parse reads a type in canonical spelling (as produced by Ref.String).
// Spaces are tolerated and ignored. ok is false when s is not a single
// well-formed type reference.
func Parse(s string) (Ref, bool) {
	p := refParser{s: strings.ReplaceAll(s, " ", "")}
	r, ok := p.ref()
	if !ok || p.pos != len(p.s) {
		return Ref{}, false
	}
	return r, true
}

type refParser struct {
	s   string
	pos int
}

func (p *refParser) ref() (Ref, bool) {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("#(),", rune(p.s[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return Ref{}, false
	}
	r := Ref{Name: p.s[start:p.pos]}
	if !strings.HasPrefix(p.s[p.pos:], "#(") {
		return r, true
	}
	p.pos += 2
	for {
		param, ok := p.param()
		if !ok {
			return Ref{}, false
		}
		r.Params = append(r.Params, param)
		if p.pos >= len(p.s) {
			return Ref{}, false
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return r, true
		default:
			return Ref{}, false
		}
	}
}

func (p *refParser) param() (Param, bool) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos > start && (p.pos == len(p.s) || p.s[p.pos] == ',' || p.s[p.pos] == ')') {
		n, err := strconv.Atoi(p.s[start:p.pos])
		if err != nil {
			return Param{}, false
		}
		return NumParam(n), true
	}
	p.pos = start
	r, ok := p.ref()
	if !ok {
		return Param{}, false
	}
	return TypeParam(r), true
}
