// Package diag defines the diagnostic model shared by the lexer, the parser
// and the drivers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity - tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code - compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001 or SYN2003.
//   - Message - human oriented text; keep it short and actionable.
//   - Primary span - the canonical source.Span pointing to the issue.
//   - Notes - optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// lexer, for example, constructs a ReportBuilder via ReportError and calls
// Emit; a nil Reporter makes that a no-op.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which supports
// sorting and a size limit; DedupReporter drops repeats before they reach it.
//
// Rendering lives in internal/diagfmt; FormatShortDiagnostics here is the one
// exception, kept next to the model so golden tests do not depend on colours.
package diag
