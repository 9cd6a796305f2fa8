package driver

import (
	"time"

	"mslayout/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Note    string
}

// PhaseObserver receives phase events emitted during Resolve.
type PhaseObserver func(PhaseEvent)

// phases объединяет таймер, трассировку и наблюдателя: одна фаза — один вызов.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
}

func (p *phases) begin(name string) func(note string) {
	idx := p.timer.Begin(name)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return func(note string) {
		elapsed := p.timer.End(idx, note)
		if p.observer != nil {
			p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed, Note: note})
		}
	}
}
