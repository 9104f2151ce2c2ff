// Package trace records where the kangaroo driver spends its time.
//
// Tracing is off unless --trace is given:
//
//	kangaroo parse --trace=- --trace-level=detail examples/bands.kg
//
// Two tracers exist. Nop discards everything; StreamTracer writes each
// event as it arrives, either as text or as NDJSON.
//
// # Levels and scopes
//
// LevelPhase shows ScopeDriver and ScopePass events (load, lex, parse,
// cache). LevelDetail adds ScopeModule, one per file or per line unit.
// LevelDebug adds ScopeNode, one point per band statement.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
