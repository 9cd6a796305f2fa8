// Package diag defines the diagnostic model shared by the lexer, the parser
// and the layout resolver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form such as
//     LEX1002, SYN2001 or LAY3001 (codes.go).
//   - Message – short human oriented text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans with extra context.
//   - Fixes – optional text edits; msc output rarely needs them, but the
//     parser attaches one when a missing ';' is obvious.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. BagReporter stores into a Bag, DedupReporter
// filters repeats. ReportBuilder lets callers chain WithNote/WithFix before
// Emit.
//
// Rendering lives in internal/diagfmt; package diag does no IO.
package diag
