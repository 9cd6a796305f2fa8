package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"PHASE", LevelPhase, true},
		{" debug ", LevelDebug, true},
		{"verbose", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Errorf("error level must not record spans")
	}
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeModule) {
		t.Errorf("phase level must stop at passes")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Errorf("detail level must stop at modules")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Errorf("debug level must record types")
	}
}

func TestSpanStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "resolve", 0)
	pass := Begin(tr, ScopePass, "parse", root.ID())
	pass.WithExtra("modules", "3").End("")
	inert := Begin(tr, ScopeNode, "type:Entry", pass.ID())
	if inert.ID() != 0 {
		t.Fatalf("node span should be filtered at phase level")
	}
	inert.WithExtra("x", "y").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "> resolve") || !strings.Contains(lines[1], "  > parse") {
		t.Errorf("begin lines: %q %q", lines[0], lines[1])
	}
	if !strings.Contains(lines[2], "< parse") || !strings.HasSuffix(lines[2], "{modules=3}") {
		t.Errorf("end line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "< resolve (ok)") {
		t.Errorf("root end: %q", lines[3])
	}
}

func TestStreamDoesNotCloseBorrowedWriter(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "t.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tr := NewStreamTracer(f, LevelPhase, FormatText)
	Begin(tr, ScopePass, "parse", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("still open\n"); err != nil {
		t.Fatalf("borrowed writer was closed: %v", err)
	}
	// после Close события молча отбрасываются
	Begin(tr, ScopePass, "late", 0)
}

func TestChromeOutputIsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeDriver, "resolve", 0)
	Point(tr, ScopeNode, "type:Entry", "32", root.ID())
	Begin(tr, ScopePass, "flatten", root.ID()).End("")
	root.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []chromeEvent `json:"traceEvents"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, data)
	}
	// begin-события в chrome не пишутся
	if len(doc.TraceEvents) != 3 {
		t.Fatalf("events = %+v", doc.TraceEvents)
	}
	if doc.TraceEvents[0].Ph != "i" || doc.TraceEvents[0].Args["detail"] != "32" {
		t.Errorf("point = %+v", doc.TraceEvents[0])
	}
	if doc.TraceEvents[2].Ph != "X" || doc.TraceEvents[2].Name != "resolve" {
		t.Errorf("root = %+v", doc.TraceEvents[2])
	}
}

func TestNDJSON(t *testing.T) {
	ev := &Event{
		Time:    time.Unix(0, 0).UTC(),
		Seq:     7,
		Kind:    KindSpanEnd,
		Scope:   ScopePass,
		SpanID:  2,
		Elapsed: 1500 * time.Microsecond,
		Name:    "flatten",
		Extra:   map[string]string{"types": "4"},
	}
	var got ndjsonEvent
	if err := json.Unmarshal(FormatEvent(ev, FormatNDJSON), &got); err != nil {
		t.Fatal(err)
	}
	if got.Kind != "end" || got.Scope != "pass" || got.ElapsedUS != 1500 || got.Extra["types"] != "4" {
		t.Fatalf("ndjson = %+v", got)
	}
}

func TestRingWrapsAndDumps(t *testing.T) {
	r := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "filtered"})

	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "b,c,d" {
		t.Fatalf("snapshot = %v", names)
	}

	tr := NewFanout(LevelPhase, NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), r)
	var out bytes.Buffer
	ok, err := DumpRing(tr, &out)
	if !ok || err != nil {
		t.Fatalf("DumpRing = %v, %v", ok, err)
	}
	if strings.Count(out.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", out.String())
	}
	if ok, _ := DumpRing(Nop, &out); ok {
		t.Fatalf("Nop has no ring")
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("LevelOff should give Nop, got %T %v", tr, err)
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := RingOf(tr); !ok {
		t.Fatalf("both mode should keep a ring")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatalf("missing mode should fail")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should give Nop")
	}
	r := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 42})
	if FromContext(ctx) != Tracer(r) || CurrentSpan(ctx).SpanID != 42 {
		t.Fatalf("context lost tracer or span")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelError)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat {
		t.Fatalf("no heartbeat recorded: %+v", snap)
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat on Nop")
	}
}
