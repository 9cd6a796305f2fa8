package layout

import (
	"math/bits"

	"mslayout/internal/ast"
	"mslayout/internal/types"
)

// FromDesign builds the initial type table from the typedefs of a design.
// Later declarations of the same name replace earlier ones.
//
//   - struct: Composite, members reversed (первый член занимает старшие биты)
//   - enum: Width(bit length of the largest label id)
//   - synonym: Alias(target)
func FromDesign(d *ast.Design) map[string]types.Decl {
	out := make(map[string]types.Decl, d.Typedefs.Len())
	for _, td := range d.Typedefs.Slice() {
		name := td.Name.String()
		switch td.Kind {
		case ast.TypedefStruct:
			members := make([]types.Member, 0, len(td.Fields))
			for i := len(td.Fields) - 1; i >= 0; i-- {
				f := td.Fields[i]
				members = append(members, types.Member{Name: f.Name, Type: f.Type.String()})
			}
			out[name] = types.Composite(members)
		case ast.TypedefEnum:
			out[name] = types.Width(EnumWidth(td.Labels))
		case ast.TypedefSynonym:
			out[name] = types.Alias(td.Target.String())
		}
	}
	return out
}

// EnumWidth is the number of bits needed for the largest label id; a single
// label with id 0 takes zero bits.
func EnumWidth(labels []ast.EnumLabel) int {
	var maxID uint64
	for _, l := range labels {
		maxID = max(maxID, l.Value)
	}
	return bits.Len64(maxID)
}
