package layout

import (
	"fmt"
	"strings"
)

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrRecursive indicates a type that contains itself and has no finite width.
	LayoutErrRecursive LayoutErrorKind = iota + 1
	// LayoutErrUnknownType is returned for a name missing from the type table.
	LayoutErrUnknownType
)

// LayoutError represents an error during layout flattening.
type LayoutError struct {
	Kind  LayoutErrorKind
	Type  string
	Cycle []string // for LayoutErrRecursive
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrRecursive:
		if len(e.Cycle) == 0 {
			return fmt.Sprintf("recursive type has infinite width (%s)", e.Type)
		}
		return fmt.Sprintf("recursive type has infinite width (cycle: %s)", strings.Join(e.Cycle, " -> "))
	case LayoutErrUnknownType:
		return fmt.Sprintf("type %s is not in the type table", e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type %s", e.Kind, e.Type)
	}
}
