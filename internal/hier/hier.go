package hier

import (
	"strings"

	"mslayout/internal/ast"
	"mslayout/internal/types"
)

// Register is a state element of the flattened design.
type Register struct {
	Path string `msgpack:"p" json:"path"`
	Type string `msgpack:"t" json:"type"`
}

// Port is a top-level input or output wire.
type Port struct {
	Name string `msgpack:"n" json:"name"`
	Type string `msgpack:"t" json:"type"`
}

// Hierarchy indexes the modules and interfaces of one design.
type Hierarchy struct {
	design *ast.Design
	byIfc  map[string]*ast.Module // обычные модули по имени интерфейса
	bvi    map[string]*ast.Module // BVI-модули по имени интерфейса
	ifcs   map[string]*ast.Interface
}

// New builds the indexes. When several modules implement the same interface
// the last one wins; the top-level wrapper is never indexed.
func New(d *ast.Design) *Hierarchy {
	h := &Hierarchy{
		design: d,
		byIfc:  make(map[string]*ast.Module, d.Modules.Len()),
		bvi:    make(map[string]*ast.Module),
		ifcs:   make(map[string]*ast.Interface, d.Interfaces.Len()),
	}
	mods := d.Modules.Slice()
	for i := range mods {
		m := &mods[i]
		switch {
		case m.IsWrapper():
		case m.BVI:
			h.bvi[m.Ifc.String()] = m
		default:
			h.byIfc[m.Ifc.String()] = m
		}
	}
	ifcs := d.Interfaces.Slice()
	for i := range ifcs {
		h.ifcs[ifcs[i].Name.String()] = &ifcs[i]
	}
	return h
}

// BVIMkNames returns the constructor names of every BVI import.
func (h *Hierarchy) BVIMkNames() []string {
	var out []string
	for _, m := range h.design.Modules.Slice() {
		if m.BVI {
			out = append(out, m.MkName)
		}
	}
	return out
}

// Top describes the module chosen as the top level.
type Top struct {
	MkName string // as requested, backslashes removed
	Ifc    string // canonical interface name
	RealMk string // constructor behind the wrapper, MkName otherwise
	// Wrapper is set when the top level is the mkTopLevel___ wrapper;
	// its wires then carry a `res_` prefix.
	Wrapper bool
	// Function is set when the real constructor is a synthesized function
	// (mk followed by a lowercase letter).
	Function bool
}

// FindTop looks up the top-level module by constructor name.
func (h *Hierarchy) FindTop(mk string) (Top, bool) {
	mk = strings.TrimSpace(strings.ReplaceAll(mk, `\`, ""))
	if r, ok := types.Parse(mk); ok {
		mk = r.String()
	}
	id := h.design.ModuleByMkName(mk)
	if !id.IsValid() {
		return Top{}, false
	}
	m := h.design.Module(id)
	top := Top{
		MkName:  m.MkName,
		Ifc:     m.Ifc.String(),
		RealMk:  m.MkName,
		Wrapper: m.IsWrapper(),
	}
	if top.Wrapper && len(m.Instances) > 0 && m.Instances[0].Ctor != "" {
		top.RealMk = m.Instances[0].Ctor
	}
	top.Function = isFunctionMk(top.RealMk)
	return top, true
}

// isFunctionMk: msc называет обёртку функции foo как mkfoo, модули — mkFoo.
func isFunctionMk(mk string) bool {
	if len(mk) < 3 {
		return false
	}
	c := mk[2]
	return c >= 'a' && c <= 'z'
}
