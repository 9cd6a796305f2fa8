package ast

import "mslayout/internal/source"

type Hints struct{ Modules, Interfaces, Typedefs uint }

// Design holds the structural tables extracted from one BSV file.
type Design struct {
	File       source.FileID
	Modules    *Arena[Module]
	Interfaces *Arena[Interface]
	Typedefs   *Arena[Typedef]
}

func NewDesign(file source.FileID, hints Hints) *Design {
	if hints.Modules == 0 {
		hints.Modules = 1 << 4
	}
	if hints.Interfaces == 0 {
		hints.Interfaces = 1 << 4
	}
	if hints.Typedefs == 0 {
		hints.Typedefs = 1 << 5
	}
	return &Design{
		File:       file,
		Modules:    NewArena[Module](hints.Modules),
		Interfaces: NewArena[Interface](hints.Interfaces),
		Typedefs:   NewArena[Typedef](hints.Typedefs),
	}
}

func (d *Design) AddModule(m Module) ModuleID {
	return ModuleID(d.Modules.Allocate(m))
}

func (d *Design) AddInterface(i Interface) InterfaceID {
	return InterfaceID(d.Interfaces.Allocate(i))
}

func (d *Design) AddTypedef(t Typedef) TypedefID {
	return TypedefID(d.Typedefs.Allocate(t))
}

func (d *Design) Module(id ModuleID) *Module          { return d.Modules.Get(uint32(id)) }
func (d *Design) Interface(id InterfaceID) *Interface { return d.Interfaces.Get(uint32(id)) }
func (d *Design) Typedef(id TypedefID) *Typedef       { return d.Typedefs.Get(uint32(id)) }

// ModuleByMkName finds a module by constructor name. When the name is declared
// more than once the last declaration wins.
func (d *Design) ModuleByMkName(mk string) ModuleID {
	found := NoModuleID
	for i := range d.Modules.Slice() {
		if d.Modules.Slice()[i].MkName == mk {
			found = ModuleID(i + 1)
		}
	}
	return found
}

// InterfaceByName finds an interface by canonical name (last declaration wins).
func (d *Design) InterfaceByName(name string) InterfaceID {
	found := NoInterfaceID
	for i := range d.Interfaces.Slice() {
		if d.Interfaces.Slice()[i].Name.String() == name {
			found = InterfaceID(i + 1)
		}
	}
	return found
}
