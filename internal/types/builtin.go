package types

// Имена встроенных типов, которые раскладываются без typedef.
const (
	BoolName   = "Bool"
	ActionName = "Action"
	MaybeName  = "Maybe"
	VectorName = "Vector"
	RegName    = "Reg"
	RegUName   = "RegU"
	WireName   = "Wire"
)

// IntWidth recognizes the fixed-width integer family Bit#(n), Int#(n), UInt#(n).
func IntWidth(r Ref) (int, bool) {
	switch r.Name {
	case "Bit", "Int", "UInt":
	default:
		return 0, false
	}
	if len(r.Params) != 1 || !r.Params[0].IsNum() {
		return 0, false
	}
	return r.Params[0].Num, true
}

// MaybeOf recognizes Maybe#(T) and returns T.
func MaybeOf(r Ref) (Ref, bool) {
	if r.Name != MaybeName || len(r.Params) != 1 || r.Params[0].IsNum() {
		return Ref{}, false
	}
	return *r.Params[0].Type, true
}

// VectorOf recognizes Vector#(N,T) with a numeric N.
func VectorOf(r Ref) (int, Ref, bool) {
	if r.Name != VectorName || len(r.Params) != 2 {
		return 0, Ref{}, false
	}
	n, elem := r.Params[0], r.Params[1]
	if !n.IsNum() || elem.IsNum() {
		return 0, Ref{}, false
	}
	return n.Num, *elem.Type, true
}

// RegOf recognizes the register wrappers Reg#(T) and RegU#(T).
func RegOf(r Ref) (Ref, bool) {
	if r.Name != RegName && r.Name != RegUName {
		return Ref{}, false
	}
	if len(r.Params) != 1 || r.Params[0].IsNum() {
		return Ref{}, false
	}
	return *r.Params[0].Type, true
}

// IsWire reports whether r is the Wire#(T) primitive.
func IsWire(r Ref) bool { return r.Name == WireName }
