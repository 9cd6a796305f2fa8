package ast

// Идентификаторы 1-based, ноль — "нет".
type (
	ModuleID    uint32
	InterfaceID uint32
	TypedefID   uint32
)

const (
	NoModuleID    ModuleID    = 0
	NoInterfaceID InterfaceID = 0
	NoTypedefID   TypedefID   = 0
)

func (id ModuleID) IsValid() bool    { return id != NoModuleID }
func (id InterfaceID) IsValid() bool { return id != NoInterfaceID }
func (id TypedefID) IsValid() bool   { return id != NoTypedefID }
