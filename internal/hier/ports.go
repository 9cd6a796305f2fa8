package hier

import (
	"mslayout/internal/ast"
	"mslayout/internal/types"
)

// Ports holds the external wires of a top-level module.
type Ports struct {
	Inputs  []Port
	Outputs []Port
}

// portSet — упорядоченное множество портов: повторное имя заменяет тип, но не позицию.
type portSet struct {
	ports []Port
	index map[string]int
}

func (s *portSet) add(name, typ string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.ports[i].Type = typ
		return
	}
	s.index[name] = len(s.ports)
	s.ports = append(s.ports, Port{Name: name, Type: typ})
}

// methodPorts maps the methods of an interface to wires:
//
//	method Action m(T a)   ->  input m_a : T, input m_enable : Bool
//	method R m(T a)        ->  output m : R, input m_a : T
func methodPorts(ifc *ast.Interface, in, out *portSet) {
	if ifc == nil {
		return
	}
	for _, m := range ifc.Methods {
		if m.IsAction() {
			for _, a := range m.Args {
				in.add(m.Name+"_"+a.Name, a.Type.String())
			}
			in.add(m.Name+"_enable", types.BoolName)
			continue
		}
		out.add(m.Name, m.Ret.String())
		for _, a := range m.Args {
			in.add(m.Name+"_"+a.Name, a.Type.String())
		}
	}
}

// Ports computes the external wires of top. For a synthesized function the
// method prefix is dropped from inputs (`fn_x` becomes `x`) and every output
// is named `out`. Ports of BVI instances anywhere below top are appended with
// their direction flipped: what the black box consumes, the design drives.
func (h *Hierarchy) Ports(top Top) Ports {
	var in, out portSet
	methodPorts(h.ifcs[top.Ifc], &in, &out)
	if top.Function {
		in, out = functionPorts(in, out)
	}

	for _, b := range h.bviInstances(top.Ifc, make(map[string]bool)) {
		var bin, bout portSet
		methodPorts(h.ifcs[b.ifc], &bin, &bout)
		for _, p := range bin.ports {
			out.add(b.path+"_"+p.Name, p.Type)
		}
		for _, p := range bout.ports {
			in.add(b.path+"_"+p.Name, p.Type)
		}
	}
	return Ports{Inputs: in.ports, Outputs: out.ports}
}

func functionPorts(in, out portSet) (portSet, portSet) {
	var fin, fout portSet
	for _, p := range in.ports {
		name := ""
		if len(p.Name) > 3 {
			name = p.Name[3:]
		}
		fin.add(name, p.Type)
	}
	for _, p := range out.ports {
		fout.add("out", p.Type)
	}
	return fin, fout
}

type bviInstance struct {
	path string
	ifc  string
}

// bviInstances finds BVI submodules below a module implementing ifc. Vectors
// of submodules are not expanded.
func (h *Hierarchy) bviInstances(ifc string, visiting map[string]bool) []bviInstance {
	m, ok := h.byIfc[ifc]
	if !ok || visiting[ifc] {
		return nil
	}
	visiting[ifc] = true
	defer delete(visiting, ifc)

	var out []bviInstance
	for _, inst := range m.Instances {
		t := inst.Type.String()
		if _, ok := h.bvi[t]; ok {
			out = append(out, bviInstance{path: inst.Name, ifc: t})
			continue
		}
		for _, sub := range h.bviInstances(t, visiting) {
			out = append(out, bviInstance{path: inst.Name + "_" + sub.path, ifc: sub.ifc})
		}
	}
	return out
}
