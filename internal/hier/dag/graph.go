package dag

import (
	"fmt"
	"slices"
	"strings"

	"mslayout/internal/diag"
	"mslayout/internal/source"
)

// Dep is one outgoing edge: the node instantiates Name at Span.
type Dep struct {
	Name string
	Span source.Span
}

// Node is a module keyed by the interface it implements.
type Node struct {
	Name string
	Span source.Span
	Deps []Dep
}

type Graph struct {
	Edges   [][]NodeID // Edges[from] = []to
	Indeg   []int      // входящие степени для Kahn (только присутствующие узлы)
	Present []bool     // узел реально объявлен, а не только упомянут
	Spans   []source.Span
}

// BuildGraph строит граф инстанцирований. Повторное объявление узла
// перекрывает предыдущее, как и в самой иерархии. Петля (модуль
// инстанцирует собственный интерфейс) сохраняется: это тоже цикл.
func BuildGraph(idx Index, nodes []Node) Graph {
	count := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]NodeID, count),
		Indeg:   make([]int, count),
		Present: make([]bool, count),
		Spans:   make([]source.Span, count),
	}
	last := make(map[NodeID]int, len(nodes))
	for i, n := range nodes {
		if id, ok := idx.NameToID[n.Name]; ok && n.Name != "" {
			last[id] = i
		}
	}
	for id, i := range last {
		g.Present[int(id)] = true
		g.Spans[int(id)] = nodes[i].Span
	}

	for from, i := range last {
		seen := make(map[NodeID]struct{}, len(nodes[i].Deps))
		for _, dep := range nodes[i].Deps {
			to, ok := idx.NameToID[dep.Name]
			if !ok {
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[int(from)] = append(g.Edges[int(from)], to)
			if g.Present[int(to)] {
				g.Indeg[int(to)]++
			}
		}
		slices.Sort(g.Edges[int(from)])
	}
	return g
}

// ReportCycles emits one warning per node left in a cycle.
func ReportCycles(r diag.Reporter, idx Index, g Graph, topo *Topo) {
	if r == nil || topo == nil || !topo.Cyclic {
		return
	}
	summary := strings.Join(idx.Names(topo.Cycles), " -> ")
	for _, id := range topo.Cycles {
		msg := fmt.Sprintf("interface %s participates in an instantiation cycle: %s; registers below it are not listed",
			idx.IDToName[int(id)], summary)
		r.Report(diag.LayInstanceCycle, diag.SevWarning, g.Spans[int(id)], msg, nil, nil)
	}
}
