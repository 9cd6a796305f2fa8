package hier

import (
	"strconv"

	"mslayout/internal/types"
)

// Registers lists the registers reachable from a module implementing ifc,
// in instantiation order. Paths join instance names with '_'; elements of a
// Vector are numbered from 0. Interfaces without a known implementation
// (BVI imports, library modules) contribute nothing.
func (h *Hierarchy) Registers(ifc string) []Register {
	r, ok := types.Parse(ifc)
	if !ok {
		return nil
	}
	return h.registers(r, make(map[string]bool))
}

func (h *Hierarchy) registers(ifc types.Ref, visiting map[string]bool) []Register {
	if n, elem, ok := types.VectorOf(ifc); ok {
		if inner, ok := types.RegOf(elem); ok {
			out := make([]Register, n)
			for i := range out {
				out[i] = Register{Path: strconv.Itoa(i), Type: inner.String()}
			}
			return out
		}
		sub := h.registers(elem, visiting)
		out := make([]Register, 0, n*len(sub))
		for i := range n {
			out = append(out, prefixed(strconv.Itoa(i), sub)...)
		}
		return out
	}

	key := ifc.String()
	m, ok := h.byIfc[key]
	if !ok || visiting[key] {
		return nil
	}
	visiting[key] = true
	defer delete(visiting, key)

	var out []Register
	for _, inst := range m.Instances {
		if inner, ok := types.RegOf(inst.Type); ok {
			out = append(out, Register{Path: inst.Name, Type: inner.String()})
			continue
		}
		out = append(out, prefixed(inst.Name, h.registers(inst.Type, visiting))...)
	}
	return out
}

func prefixed(prefix string, regs []Register) []Register {
	out := make([]Register, len(regs))
	for i, r := range regs {
		out[i] = Register{Path: prefix + "_" + r.Path, Type: r.Type}
	}
	return out
}
