package resolver

import (
	"maps"
	"slices"

	"mslayout/internal/hier"
	"mslayout/internal/layout"
)

// SnapshotVersion is bumped whenever the Snapshot encoding changes.
const SnapshotVersion uint16 = 1

// Snapshot is the serializable state of a Resolver.
type Snapshot struct {
	Version   uint16                   `msgpack:"v" json:"version"`
	Top       string                   `msgpack:"top" json:"top"`
	Wrapper   bool                     `msgpack:"wrapper" json:"wrapper"`
	Inputs    []hier.Port              `msgpack:"in" json:"inputs"`
	Outputs   []hier.Port              `msgpack:"out" json:"outputs"`
	Registers []hier.Register          `msgpack:"regs" json:"registers"`
	Layouts   map[string]layout.Layout `msgpack:"layouts" json:"layouts"`
	BVIs      []string                 `msgpack:"bvi" json:"bvi"`
}

// Snapshot captures everything the queries need.
func (r *Resolver) Snapshot() Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		Top:       r.top,
		Wrapper:   r.wrapper,
		Inputs:    slices.Clone(r.inputs),
		Outputs:   slices.Clone(r.outputs),
		Registers: slices.Clone(r.regs),
		Layouts:   maps.Clone(r.layouts),
		BVIs:      r.BVIs(),
	}
}

// FromSnapshot rebuilds a Resolver that answers every query like the one
// the snapshot was taken from.
func FromSnapshot(s Snapshot) (*Resolver, error) {
	if s.Version != SnapshotVersion {
		return nil, &Error{Kind: ErrSnapshotVersion, Top: s.Top, Got: s.Version}
	}
	return fromParts(s), nil
}
