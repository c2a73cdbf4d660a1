// Package tape implements the deterministic execution-record tape.
//
// A Tape is an ordered, in-memory log of captured workflow executions.
// Each record carries the run's input, its outcome, and every call made to
// its named boundary dependencies. The tape can be persisted as JSONL,
// reloaded, and compiled into per-boundary FIFO queues so that a replayed
// workflow answers boundary calls from previously observed responses
// instead of performing real side effects.
//
// # Critical Patterns
//
// Record/Replay Mode Gate
//   - All mutation flows through Push, which consults the tape's Mode
//   - In replay mode, Push is a silent no-op: replaying a workflow must
//     never grow or corrupt the tape that feeds the replay
//
// Uniform Boundary Shape
//   - Every stored boundary call carries explicit output and error fields
//     (null when absent), so replay consumers never branch on presence
//
// Whole-File Overwrite
//   - Save serializes the full in-memory log and overwrites the file;
//     there is no incremental append
//
// FIFO Cache Ordering
//   - CompileCache preserves record order, and within a record the
//     captured call order, per boundary name
//
// The tape is a single-owner data structure: it holds no locks, and
// callers must not mutate one instance from multiple goroutines.
package tape
