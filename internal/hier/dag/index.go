package dag

import "sort"

type NodeID uint32

// Index раздаёт узлам плотные ID в лексикографическом порядке имён.
type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// BuildIndex собирает уникальные имена узлов и их зависимостей.
// Зависимости без собственного узла (BVI, библиотечные модули) тоже
// получают ID, но в графе помечаются как отсутствующие.
func BuildIndex(nodes []Node) Index {
	uniq := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Name != "" {
			uniq[n.Name] = struct{}{}
		}
		for _, dep := range n.Deps {
			if dep.Name != "" {
				uniq[dep.Name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]NodeID, len(names))
	for i, name := range names {
		nameToID[name] = NodeID(i)
	}
	return Index{NameToID: nameToID, IDToName: names}
}

// Names maps ids back to names.
func (idx Index) Names(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
