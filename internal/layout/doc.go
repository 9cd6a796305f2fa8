// Package layout resolves the type table of an elaborated design and
// flattens every type into bit-ordered leaves.
//
// The table starts from the typedefs (FromDesign); Close adds the builtin
// types reachable from them and from the extra roots, and FlattenAll turns each
// entry into a Layout. Composite leaves are listed from bit 0 upward, so the
// bit index of a wire can be walked against leaf widths directly.
package layout
