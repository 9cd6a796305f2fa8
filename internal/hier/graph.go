package hier

import (
	"slices"

	"mslayout/internal/diag"
	"mslayout/internal/hier/dag"
	"mslayout/internal/types"
)

// Cycles finds interfaces whose implementations instantiate each other and
// reports them to r (which may be nil). Registers and BVI ports below a cycle
// are cut at the second visit, so the listing is incomplete there.
func (h *Hierarchy) Cycles(r diag.Reporter) []string {
	nodes := h.instanceNodes()
	idx := dag.BuildIndex(nodes)
	g := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	dag.ReportCycles(r, idx, g, topo)
	return idx.Names(topo.Cycles)
}

func (h *Hierarchy) instanceNodes() []dag.Node {
	keys := make([]string, 0, len(h.byIfc))
	for k := range h.byIfc {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	nodes := make([]dag.Node, 0, len(keys))
	for _, k := range keys {
		m := h.byIfc[k]
		n := dag.Node{Name: k, Span: m.Span}
		for _, inst := range m.Instances {
			t := inst.Type
			if _, elem, ok := types.VectorOf(t); ok {
				t = elem
			}
			if _, ok := types.RegOf(t); ok {
				continue
			}
			n.Deps = append(n.Deps, dag.Dep{Name: t.String(), Span: inst.Span})
		}
		nodes = append(nodes, n)
	}
	return nodes
}
