package resolver

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/hier"
	"mslayout/internal/layout"
	"mslayout/internal/lexer"
	"mslayout/internal/parser"
	"mslayout/internal/source"
	"mslayout/internal/trace"
)

// wrapperPrefix — bsc называет интерфейс внутри mkTopLevel___ `res`,
// и все его провода получают этот префикс.
const wrapperPrefix = "res_"

type Options struct {
	Name      string        // имя виртуального файла для New; по умолчанию "<input>"
	Reporter  diag.Reporter // может быть nil
	MaxErrors uint
}

// Resolver answers layout queries for one design and top-level module.
type Resolver struct {
	top     string
	wrapper bool

	inputs  []hier.Port
	outputs []hier.Port
	regs    []hier.Register
	wires   map[string]string // провод -> тип; первым побеждает input, затем output, затем регистр

	layouts map[string]layout.Layout
	bvi     map[string]struct{}
}

// New builds a resolver from BSV text.
func New(text, top string, opts Options) (*Resolver, error) {
	name := opts.Name
	if name == "" {
		name = "<input>"
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return Build(context.Background(), fs.Get(id), top, opts)
}

// Build runs the whole pipeline over a loaded file: parse, walk the
// hierarchy from top, resolve and flatten the type table. The only fatal
// outcome is a missing top-level module.
func Build(ctx context.Context, file *source.File, top string, opts Options) (*Resolver, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	rep := opts.Reporter

	span := trace.Begin(tracer, trace.ScopePass, "parse", parent)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	d := parser.ParseFile(lx, parser.Options{MaxErrors: opts.MaxErrors, Reporter: rep}).Design
	span.WithExtra("modules", strconv.Itoa(int(d.Modules.Len()))).
		WithExtra("interfaces", strconv.Itoa(int(d.Interfaces.Len()))).
		WithExtra("typedefs", strconv.Itoa(int(d.Typedefs.Len()))).
		End("")

	span = trace.Begin(tracer, trace.ScopePass, "hierarchy", parent)
	h := hier.New(d)
	t, ok := h.FindTop(top)
	if !ok {
		reportTopNotFound(rep, file, d, top)
		span.End("top not found")
		return nil, &Error{Kind: ErrTopLevelNotFound, Top: top}
	}
	if n := countMk(d, t.MkName); n > 1 {
		diag.ReportWarning(rep, diag.LayAmbiguousTop, topSpan(file, d, t.MkName),
			fmt.Sprintf("top-level %s is declared %d times; using the last declaration", t.MkName, n)).Emit()
	}
	cycles := h.Cycles(rep)
	regs := h.Registers(t.Ifc)
	ports := h.Ports(t)
	for _, r := range regs {
		trace.Point(tracer, trace.ScopeModule, "register:"+r.Path, r.Type, span.ID())
	}
	span.WithExtra("cycles", strconv.Itoa(len(cycles))).
		WithExtra("registers", strconv.Itoa(len(regs))).
		WithExtra("inputs", strconv.Itoa(len(ports.Inputs))).
		WithExtra("outputs", strconv.Itoa(len(ports.Outputs))).
		End("")

	span = trace.Begin(tracer, trace.ScopePass, "resolve", parent)
	eng := layout.New(layout.FromDesign(d))
	seeds := make([]string, 0, len(regs)+len(ports.Inputs)+len(ports.Outputs))
	for _, r := range regs {
		seeds = append(seeds, r.Type)
	}
	for _, p := range ports.Inputs {
		seeds = append(seeds, p.Type)
	}
	for _, p := range ports.Outputs {
		seeds = append(seeds, p.Type)
	}
	unresolved := eng.Close(seeds)
	for _, u := range unresolved {
		diag.ReportInfo(rep, diag.LayUnresolvedType, source.Span{File: file.ID},
			"type "+u+" could not be resolved; wires of this type are left untranslated").Emit()
	}
	span.WithExtra("unresolved", strconv.Itoa(len(unresolved))).End("")

	span = trace.Begin(tracer, trace.ScopePass, "flatten", parent)
	layouts, errs := eng.FlattenAll()
	for _, le := range errs {
		diag.ReportWarning(rep, diag.LayRecursiveType, source.Span{File: file.ID}, le.Error()).Emit()
	}
	if tracer.Level().ShouldEmit(trace.ScopeNode) {
		names := make([]string, 0, len(layouts))
		for name := range layouts {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			trace.Point(tracer, trace.ScopeNode, "type:"+name, strconv.Itoa(layouts[name].Width()), span.ID())
		}
	}
	span.WithExtra("types", strconv.Itoa(len(layouts))).End("")

	return fromParts(Snapshot{
		Version:   SnapshotVersion,
		Top:       t.MkName,
		Wrapper:   t.Wrapper,
		Inputs:    ports.Inputs,
		Outputs:   ports.Outputs,
		Registers: regs,
		Layouts:   layouts,
		BVIs:      h.BVIMkNames(),
	}), nil
}

func fromParts(s Snapshot) *Resolver {
	r := &Resolver{
		top:     s.Top,
		wrapper: s.Wrapper,
		inputs:  s.Inputs,
		outputs: s.Outputs,
		regs:    s.Registers,
		wires:   make(map[string]string, len(s.Inputs)+len(s.Outputs)+len(s.Registers)),
		layouts: s.Layouts,
		bvi:     make(map[string]struct{}, len(s.BVIs)),
	}
	if r.layouts == nil {
		r.layouts = map[string]layout.Layout{}
	}
	add := func(name, typ string) {
		if _, ok := r.wires[name]; !ok {
			r.wires[name] = typ
		}
	}
	for _, p := range s.Inputs {
		add(p.Name, p.Type)
	}
	for _, p := range s.Outputs {
		add(p.Name, p.Type)
	}
	for _, reg := range s.Registers {
		add(reg.Path, reg.Type)
	}
	for _, mk := range s.BVIs {
		r.bvi[mk] = struct{}{}
	}
	return r
}

func reportTopNotFound(rep diag.Reporter, file *source.File, d *ast.Design, top string) {
	b := diag.ReportError(rep, diag.LayTopNotFound, source.Span{File: file.ID},
		"top-level module "+top+" not found in generated BSV")
	for _, m := range d.Modules.Slice() {
		if m.BVI {
			continue
		}
		b = b.WithNote(m.Span, "candidate: "+m.MkName)
	}
	b.Emit()
}

func countMk(d *ast.Design, mk string) int {
	n := 0
	for _, m := range d.Modules.Slice() {
		if m.MkName == mk {
			n++
		}
	}
	return n
}

func topSpan(file *source.File, d *ast.Design, mk string) source.Span {
	if id := d.ModuleByMkName(mk); id.IsValid() {
		return d.Module(id).Span
	}
	return source.Span{File: file.ID}
}

// Translate maps a flat wire reference such as `head[19]` or `head[19]$D_IN`
// to the field it belongs to (`head.req.data[0]$D_IN`). Anything that cannot
// be translated (no index, a range index, an unknown wire, a scalar or
// unresolved type, an index past the end) comes back unchanged, except that
// the wrapper prefix `res_` is always removed when a wrapper is in effect.
func (r *Resolver) Translate(wire string) string {
	if r.wrapper {
		wire = strings.TrimPrefix(wire, wrapperPrefix)
	}
	open := strings.IndexByte(wire, '[')
	if open < 0 {
		return wire
	}
	base := strings.TrimSpace(wire[:open])
	last := wire[strings.LastIndexByte(wire, '[')+1:]
	idxStr, suffix, _ := strings.Cut(last, "]")
	if strings.Contains(idxStr, ":") {
		return wire
	}
	idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
	if err != nil {
		return wire
	}

	typ, ok := r.wires[base]
	if !ok {
		return wire
	}
	l, ok := r.layouts[typ]
	if !ok || l.IsScalar() {
		return wire
	}
	leaf, off, ok := l.Locate(idx)
	if !ok {
		return wire
	}
	name := base + "." + leaf.Path
	if leaf.Width == 1 {
		return name + suffix
	}
	return name + "[" + strconv.Itoa(off) + "]" + suffix
}

// Width returns the flattened width of a type, or -1 when the type is
// unknown or unresolved. The name is looked up as given and then in
// canonical spelling (`Vector#( 2, Bool )` finds `Vector#(2,Bool)`).
func (r *Resolver) Width(typ string) int {
	l, ok := r.Layout(typ)
	if !ok {
		return -1
	}
	return l.Width()
}

// IsBVI reports whether mkName is the constructor of an `import "BVI"` module.
func (r *Resolver) IsBVI(mkName string) bool {
	_, ok := r.bvi[mkName]
	return ok
}

// Layout returns the flattened layout of a type.
func (r *Resolver) Layout(typ string) (layout.Layout, bool) {
	if l, ok := r.layouts[typ]; ok {
		return l, true
	}
	ref, ok := parser.ParseTypeString(typ)
	if !ok {
		return layout.Layout{}, false
	}
	l, ok := r.layouts[ref.String()]
	return l, ok
}

// WireType returns the type of a top-level port or register.
func (r *Resolver) WireType(wire string) (string, bool) {
	if r.wrapper {
		wire = strings.TrimPrefix(wire, wrapperPrefix)
	}
	t, ok := r.wires[wire]
	return t, ok
}

// Types lists every type in the table, sorted.
func (r *Resolver) Types() []string {
	out := make([]string, 0, len(r.layouts))
	for t := range r.layouts {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (r *Resolver) Inputs() []hier.Port        { return slices.Clone(r.inputs) }
func (r *Resolver) Outputs() []hier.Port       { return slices.Clone(r.outputs) }
func (r *Resolver) Registers() []hier.Register { return slices.Clone(r.regs) }

// TopLevel is the resolved top-level constructor name.
func (r *Resolver) TopLevel() string { return r.top }

// HasWrapper reports whether the top level is the mkTopLevel___ wrapper.
func (r *Resolver) HasWrapper() bool { return r.wrapper }

// BVIs lists the black-box constructor names, sorted.
func (r *Resolver) BVIs() []string {
	out := make([]string, 0, len(r.bvi))
	for mk := range r.bvi {
		out = append(out, mk)
	}
	slices.Sort(out)
	return out
}
