package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []NodeID   // линейный порядок: сначала те, кто никем не инстанцирован
	Batches [][]NodeID // волны независимых узлов
	Cyclic  bool
	Cycles  []NodeID // узлы на циклах (или на пути между двумя циклами)
}

func nodeID(i int) NodeID {
	id, err := safecast.Conv[NodeID](i)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	return id
}

// ToposortKahn упорядочивает присутствующие узлы алгоритмом Кана.
func ToposortKahn(g Graph) *Topo {
	count := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]NodeID, 0, count)}

	active := 0
	current := make([]NodeID, 0, count)
	for i := range count {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, nodeID(i))
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)
		var next []NodeID
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		topo.Cycles = pruneSinks(g, indeg)
	}
	return topo
}

// pruneSinks отбрасывает из остатка Кана узлы, которые лишь висят под
// циклом: у них нет рёбер обратно в остаток.
func pruneSinks(g Graph, indeg []int) []NodeID {
	left := make([]bool, len(g.Edges))
	for i := range left {
		left[i] = g.Present[i] && indeg[i] > 0
	}
	for changed := true; changed; {
		changed = false
		for i := range left {
			if !left[i] {
				continue
			}
			out := false
			for _, to := range g.Edges[i] {
				if left[int(to)] {
					out = true
					break
				}
			}
			if !out {
				left[i] = false
				changed = true
			}
		}
	}
	var cycles []NodeID
	for i, ok := range left {
		if ok {
			cycles = append(cycles, nodeID(i))
		}
	}
	return cycles
}
