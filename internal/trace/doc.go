// Package trace records what the resolver pipeline is doing.
//
// Spans cover the driver (one resolve, one translate batch) and each pass
// (canonicalize, parse, hierarchy, resolve, flatten). At detail level the
// hierarchy pass adds a point event per flattened register, at debug level
// the flattener adds one per type with its width. A tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parent)
//	defer span.End("")
//
// Three sinks exist. StreamTracer writes text, NDJSON or chrome://tracing
// JSON as events happen. RingTracer keeps the last N events for the panic
// dump in cmd/mslayout. Fanout combines the two for --trace-mode=both.
package trace
