package layout

import (
	"errors"
	"slices"
	"sort"
	"strconv"
	"strings"

	"mslayout/internal/types"
)

// Leaf is one flattened member: a dotted path and its width in bits.
type Leaf struct {
	Path  string `msgpack:"p" json:"path"`
	Width int    `msgpack:"w" json:"width"`
}

// Layout is the flattened bit layout of a type. A scalar layout holds only a
// width (types.Unresolved when unknown); a composite holds leaves ordered from
// bit 0 upward.
type Layout struct {
	Composite bool   `msgpack:"c" json:"composite"`
	Scalar    int    `msgpack:"s" json:"scalar,omitempty"`
	Leaves    []Leaf `msgpack:"l" json:"leaves,omitempty"`
}

func ScalarLayout(w int) Layout { return Layout{Scalar: w} }

func (l Layout) IsScalar() bool { return !l.Composite }

// Resolved reports whether the layout has a known width.
func (l Layout) Resolved() bool { return l.Composite || l.Scalar != types.Unresolved }

// Width is the scalar width or the sum of the leaf widths.
func (l Layout) Width() int {
	if !l.Composite {
		return l.Scalar
	}
	sum := 0
	for _, leaf := range l.Leaves {
		sum += leaf.Width
	}
	return sum
}

// Locate finds the leaf holding bit idx and the offset of that bit inside it.
func (l Layout) Locate(idx int) (Leaf, int, bool) {
	if !l.Composite || idx < 0 {
		return Leaf{}, 0, false
	}
	off := idx
	for _, leaf := range l.Leaves {
		if leaf.Width <= off {
			off -= leaf.Width
			continue
		}
		return leaf, off, true
	}
	return Leaf{}, 0, false
}

// LayoutEngine resolves the type table to a fixpoint and flattens it.
type LayoutEngine struct {
	decls map[string]types.Decl
	cache *cache
}

// New creates an engine over a copy of decls.
func New(decls map[string]types.Decl) *LayoutEngine {
	own := make(map[string]types.Decl, len(decls)+16)
	for k, v := range decls {
		own[k] = v
	}
	return &LayoutEngine{decls: own, cache: newCache()}
}

// Decl returns the table entry for a canonical type name.
func (e *LayoutEngine) Decl(t string) (types.Decl, bool) {
	d, ok := e.decls[t]
	return d, ok
}

// Types returns every name in the table in sorted order.
func (e *LayoutEngine) Types() []string {
	out := make([]string, 0, len(e.decls))
	for k := range e.decls {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Close adds entries for every referenced type until no reference is
// missing. Seeds are extra roots (register and port types). Names that only
// got the unresolved fallback are returned in the order they were met.
func (e *LayoutEngine) Close(seeds []string) []string {
	var queue []string
	for _, name := range e.Types() {
		queue = append(queue, e.decls[name].Refs()...)
	}
	queue = append(queue, seeds...)

	var unresolved []string
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if _, ok := e.decls[t]; ok {
			continue
		}
		d := builtinDecl(t)
		e.decls[t] = d
		if d.Kind == types.DeclWidth && d.Width == types.Unresolved {
			unresolved = append(unresolved, t)
		}
		queue = append(queue, d.Refs()...)
	}
	// новые записи могли сделать старые вычисления неактуальными
	e.cache = newCache()
	return unresolved
}

// MaxLeaves bounds the number of leaves of one layout. Larger types (huge
// vectors, vectors of vectors) stay unresolved instead of exhausting memory.
const MaxLeaves = 1 << 20

// builtinDecl понимает встроенные типы: Bool, Bit/Int/UInt#(n), Maybe#(T), Vector#(n,T).
// Остальное — Unresolved.
func builtinDecl(t string) types.Decl {
	if t == types.BoolName {
		return types.Width(1)
	}
	r, ok := types.Parse(t)
	if !ok {
		return types.UnresolvedDecl()
	}
	if n, ok := types.IntWidth(r); ok {
		return types.Width(n)
	}
	if elem, ok := types.MaybeOf(r); ok {
		// старший бит — valid
		return types.Composite([]types.Member{
			{Name: "value", Type: elem.String()},
			{Name: "valid", Type: types.BoolName},
		})
	}
	if n, elem, ok := types.VectorOf(r); ok {
		if n > MaxLeaves {
			return types.UnresolvedDecl()
		}
		members := make([]types.Member, n)
		es := elem.String()
		for i := range members {
			members[i] = types.Member{Name: "_" + strconv.Itoa(i), Type: es}
		}
		return types.Composite(members)
	}
	return types.UnresolvedDecl()
}

type layoutState struct {
	stack []string
	index map[string]int
}

func newLayoutState() *layoutState {
	return &layoutState{
		stack: nil,
		index: make(map[string]int, 32),
	}
}

// LayoutOf computes and caches the flattened layout of a type. A reference
// cycle yields an unresolved layout and a LayoutErrRecursive error.
func (e *LayoutEngine) LayoutOf(t string) (Layout, error) {
	if e == nil {
		return ScalarLayout(types.Unresolved), nil
	}
	if e.cache == nil {
		e.cache = newCache()
	}
	l, err := e.layoutOf(t, newLayoutState())
	if err != nil {
		return l, err
	}
	return l, nil
}

func (e *LayoutEngine) layoutOf(t string, state *layoutState) (Layout, *LayoutError) {
	if cached, ok := e.cache.get(t); ok {
		return cached.Layout, cached.Err
	}

	if idx, ok := state.index[t]; ok {
		cycle := append(slices.Clone(state.stack[idx:]), t)
		err := &LayoutError{
			Kind:  LayoutErrRecursive,
			Type:  t,
			Cycle: cycle,
		}
		e.cache.put(t, &cacheEntry{Layout: ScalarLayout(types.Unresolved), Err: err})
		return ScalarLayout(types.Unresolved), err
	}

	state.index[t] = len(state.stack)
	state.stack = append(state.stack, t)
	l, err := e.computeLayout(t, state)
	state.stack = state.stack[:len(state.stack)-1]
	delete(state.index, t)

	e.cache.put(t, &cacheEntry{Layout: l, Err: err})
	return l, err
}

func (e *LayoutEngine) computeLayout(t string, state *layoutState) (Layout, *LayoutError) {
	d, ok := e.decls[t]
	if !ok {
		return ScalarLayout(types.Unresolved), &LayoutError{Kind: LayoutErrUnknownType, Type: t}
	}
	switch d.Kind {
	case types.DeclWidth:
		return ScalarLayout(d.Width), nil
	case types.DeclAlias:
		return e.layoutOf(d.Target, state)
	case types.DeclComposite:
		out := Layout{Composite: true, Leaves: make([]Leaf, 0, len(d.Members))}
		for _, m := range d.Members {
			ml, err := e.layoutOf(m.Type, state)
			if err != nil {
				return ScalarLayout(types.Unresolved), err
			}
			if ml.IsScalar() {
				if ml.Scalar == types.Unresolved {
					// один неизвестный член делает неизвестным весь тип
					return ScalarLayout(types.Unresolved), nil
				}
				out.Leaves = append(out.Leaves, Leaf{Path: m.Name, Width: ml.Scalar})
				continue
			}
			if len(out.Leaves)+len(ml.Leaves) > MaxLeaves {
				return ScalarLayout(types.Unresolved), nil
			}
			for _, sub := range ml.Leaves {
				out.Leaves = append(out.Leaves, Leaf{Path: joinPath(m.Name, sub.Path), Width: sub.Width})
			}
		}
		return out, nil
	}
	return ScalarLayout(types.Unresolved), nil
}

// FlattenAll computes the layout of every type in the table. Recursive types
// come back unresolved together with their errors.
func (e *LayoutEngine) FlattenAll() (map[string]Layout, []*LayoutError) {
	out := make(map[string]Layout, len(e.decls))
	var errs []*LayoutError
	for _, t := range e.Types() {
		l, err := e.LayoutOf(t)
		out[t] = l
		var le *LayoutError
		if err != nil && errors.As(err, &le) && le.Type == t {
			errs = append(errs, le)
		}
	}
	return out, errs
}

// WidthOf returns the flattened width of t.
func (e *LayoutEngine) WidthOf(t string) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Width(), err
}

func joinPath(a, b string) string {
	var sb strings.Builder
	sb.Grow(len(a) + 1 + len(b))
	sb.WriteString(a)
	sb.WriteByte('.')
	sb.WriteString(b)
	return sb.String()
}
