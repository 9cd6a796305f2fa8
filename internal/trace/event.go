package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивает получатель
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64        // 0 — корневой span
	Elapsed  time.Duration // только для KindSpanEnd
	Name     string        // "resolve", "parse", "module:mkTop", "type:Entry"
	Detail   string
	Extra    map[string]string
}
