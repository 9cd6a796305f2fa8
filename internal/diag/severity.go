package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

var severityNames = map[string]Severity{
	"info":    SevInfo,
	"warning": SevWarning,
	"error":   SevError,
}

// ParseSeverity reads the lowercase names used on the command line
// (info, warning, error); "warn" is accepted too.
func ParseSeverity(s string) (Severity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return SevWarning, nil
	}
	if sev, ok := severityNames[s]; ok {
		return sev, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|warning|error)", s)
}

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
