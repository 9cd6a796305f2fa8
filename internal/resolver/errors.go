package resolver

import "fmt"

// ErrorKind classifies construction failures.
type ErrorKind uint8

const (
	// ErrTopLevelNotFound: no module with the requested constructor name.
	ErrTopLevelNotFound ErrorKind = iota + 1
	// ErrSnapshotVersion: snapshot written by an incompatible schema.
	ErrSnapshotVersion
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTopLevelNotFound:
		return "top-level not found"
	case ErrSnapshotVersion:
		return "snapshot version mismatch"
	}
	return "unknown"
}

// Error is returned when a Resolver cannot be constructed.
type Error struct {
	Kind ErrorKind
	Top  string // requested top-level constructor
	Got  uint16 // snapshot version found, for ErrSnapshotVersion
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrTopLevelNotFound:
		return fmt.Sprintf("top-level module %s not found in generated BSV", e.Top)
	case ErrSnapshotVersion:
		return fmt.Sprintf("snapshot schema %d, want %d", e.Got, SnapshotVersion)
	}
	return fmt.Sprintf("resolver error kind=%d", e.Kind)
}

// Is lets errors.Is match on kind: errors.Is(err, &resolver.Error{Kind: ErrTopLevelNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Kind == e.Kind
}
