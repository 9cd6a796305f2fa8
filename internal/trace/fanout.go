package trace

import (
	"errors"
	"io"
)

// Fanout sends every event to several tracers (stream + ring for --trace-mode=both).
type Fanout struct {
	tracers []Tracer
	level   Level
}

func NewFanout(level Level, tracers ...Tracer) *Fanout {
	return &Fanout{tracers: tracers, level: level}
}

func (t *Fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *Fanout) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *Fanout) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *Fanout) Level() Level  { return t.level }
func (t *Fanout) Enabled() bool { return t.level > LevelOff }

// RingOf finds the ring buffer behind t, if there is one.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch v := t.(type) {
	case *RingTracer:
		return v, true
	case *Fanout:
		for _, tr := range v.tracers {
			if r, ok := RingOf(tr); ok {
				return r, true
			}
		}
	}
	return nil, false
}

// DumpRing writes the ring behind t to w in text form. It reports false when
// t keeps no ring.
func DumpRing(t Tracer, w io.Writer) (bool, error) {
	r, ok := RingOf(t)
	if !ok {
		return false, nil
	}
	return true, r.Dump(w, FormatText)
}
