package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только дамп кольца при панике
	LevelPhase        // driver и проходы конвейера
	LevelDetail       // + модули иерархии
	LevelDebug        // + отдельные типы
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a --trace-level value, case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// Scope is the granularity of an event. Lower is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // resolve, translate batch
	ScopePass                    // canonicalize, parse, hierarchy, resolve, flatten
	ScopeModule                  // один модуль иерархии
	ScopeNode                    // один тип
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeModule:
		return "module"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

// ShouldEmit reports whether events of scope pass at level l.
// LevelError records nothing up front; heartbeats bypass this check.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeModule
	case LevelDebug:
		return true
	}
	return false
}
