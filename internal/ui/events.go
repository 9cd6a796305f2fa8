package ui

import "mslayout/internal/driver"

// Stage is a step of resolving one design.
type Stage uint8

const (
	StageNone Stage = iota
	StageCanonicalize
	StageCache
	StageBuild
)

// Status is the state of a design within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress of one design. An empty File marks a run-wide event.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

func stageOf(phase string) Stage {
	switch phase {
	case "canonicalize":
		return StageCanonicalize
	case "cache":
		return StageCache
	case "build":
		return StageBuild
	}
	return StageNone
}

// Observer forwards driver phase starts for file into events.
func Observer(file string, events chan<- Event) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseStart {
			return
		}
		if st := stageOf(ev.Name); st != StageNone {
			events <- Event{File: file, Stage: st, Status: StatusWorking}
		}
	}
}
