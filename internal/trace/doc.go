// Package trace provides span tracing for asmfmt runs.
//
// Enable tracing via command-line flags:
//
//	asmfmt --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and phase spans (config load, mnemonic load,
// formatting). LevelDetail and LevelDebug add one span per input file.
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "config", 0)
//	defer span.End("")
package trace
