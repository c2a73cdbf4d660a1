package tape

// Tape is an ordered log of normalized execution records with a
// record/replay mode gate and optional file persistence.
//
// The tape owns its log exclusively: no other component mutates it
// directly. It holds no locks; there is exactly one logical owner per
// instance, and callers must not invoke mutating operations concurrently
// from multiple goroutines.
type Tape struct {
	path string
	mode Mode
	log  []LogRecord
}

// Option configures a Tape.
type Option func(*Tape)

// WithPath configures the base persistence path. The serialized log is
// written to path + ".log". Without a path the tape is memory-only.
func WithPath(path string) Option {
	return func(t *Tape) {
		t.path = path
	}
}

// WithMode sets the initial mode. Invalid values are ignored and the
// tape stays in record mode.
func WithMode(m Mode) Option {
	return func(t *Tape) {
		if m.Valid() {
			t.mode = m
		}
	}
}

// New creates an empty tape in record mode.
func New(opts ...Option) *Tape {
	t := &Tape{
		mode: ModeRecord,
		log:  make([]LogRecord, 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Path returns the configured base path ("" for memory-only tapes).
func (t *Tape) Path() string {
	return t.path
}

// Len returns the number of records on the tape.
func (t *Tape) Len() int {
	return len(t.log)
}

// Records returns the log in order. The returned slice is shared with
// the tape and must not be mutated.
func (t *Tape) Records() []LogRecord {
	return t.log
}

// Push normalizes a completed execution record and appends it to the log.
// The meta argument is merged into the record's metadata, winning on key
// collision.
//
// While the tape is in replay mode, Push is a no-op: it returns a zero
// LogRecord and leaves the log unchanged, so a replayed workflow can
// complete without mutating the tape that feeds its boundary cache.
func (t *Tape) Push(rec ExecutionRecord, meta map[string]string) LogRecord {
	if t.mode == ModeReplay {
		return LogRecord{}
	}
	logRec := normalizeRecord(rec, meta)
	t.log = append(t.log, logRec)
	return logRec
}

// PushNamed appends a legacy two-field item under an explicit name.
// The item must define an output or an error; one defining neither fails
// with CodeInvalidLogItem instead of being silently stored as pending.
//
// Replay mode silences PushNamed the same way it silences Push.
func (t *Tape) PushNamed(name string, item LegacyItem, meta map[string]string) (LogRecord, error) {
	if item.Output == nil && item.Error == nil {
		return LogRecord{}, newInvalidLogItemError(name)
	}
	rec := ExecutionRecord{
		Input:    item.Input,
		Output:   item.Output,
		Error:    item.Error,
		TaskName: name,
	}
	return t.Push(rec, meta), nil
}

// CompileCache flattens the log's boundary calls into per-boundary FIFO
// queues for consumption by a replay-mode boundary wrapper.
//
// Entries for a given boundary name appear in the order their records
// appear on the tape, and within a record in captured call order. The
// result is derived, never stored: each invocation recomputes it fully
// from the current log.
func (t *Tape) CompileCache() map[string][]BoundaryCall {
	cache := make(map[string][]BoundaryCall)
	for _, rec := range t.log {
		for name, calls := range rec.Boundaries {
			cache[name] = append(cache[name], calls...)
		}
	}
	return cache
}

// Engine is the seam to an externally owned execution engine: a settable
// completion listener plus a boundary-data store the engine consults to
// answer boundary calls during replay. The tape never calls into the
// engine for anything else and never inspects how boundaries are invoked.
type Engine interface {
	// SetOnComplete installs the listener invoked once per completed
	// execution record.
	SetOnComplete(fn func(ExecutionRecord))

	// SetBoundariesData seeds the engine's per-boundary replay queues.
	// The engine pops entries FIFO per boundary name as calls occur.
	SetBoundariesData(data map[string][]BoundaryCall)
}

// RecordFrom wires an engine's completion notifications into this tape
// and immediately seeds the engine's boundary data with the compiled
// cache of the current log.
//
// Completed records are appended under the given name only while the
// tape is in record mode; the mode gate in Push guarantees replayed runs
// leave the log untouched.
func (t *Tape) RecordFrom(name string, eng Engine) {
	eng.SetOnComplete(func(rec ExecutionRecord) {
		if rec.TaskName == "" {
			rec.TaskName = name
		}
		t.Push(rec, nil)
	})
	eng.SetBoundariesData(t.CompileCache())
}
