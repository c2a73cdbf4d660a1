package tape

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LogExtension is appended to the configured base path to form the
// on-disk file name.
const LogExtension = ".log"

// logFile returns the full on-disk path for the tape.
func (t *Tape) logFile() string {
	return t.path + LogExtension
}

// LoadSync reads the persisted log and replaces the in-memory log with
// its content. Returns the loaded records.
//
// A tape without a configured path is memory-only: LoadSync returns an
// empty list immediately. A missing parent directory fails with
// CodeMissingLogDirectory; it is never created implicitly. A missing
// log file is the expected first-run state and yields an empty log,
// discarding any records already in memory: present or absent, the file
// is the source of truth after a load. Any other read failure
// propagates; absence is the only tolerated one.
func (t *Tape) LoadSync() ([]LogRecord, error) {
	if t.path == "" {
		return []LogRecord{}, nil
	}

	dir := filepath.Dir(t.path)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, newMissingLogDirectoryError(t.path)
	}

	data, err := os.ReadFile(t.logFile())
	if errors.Is(err, fs.ErrNotExist) {
		t.log = make([]LogRecord, 0)
		return t.log, nil
	}
	if err != nil {
		return nil, newReadFailureError(t.path, err)
	}

	records, err := Parse(string(data))
	if err != nil {
		return nil, newReadFailureError(t.path, err)
	}

	// Replace, never merge: the file is the source of truth.
	t.log = records
	return records, nil
}

// Load is the context-aware variant of LoadSync. The two are behaviorally
// identical and produce the same log for the same file content.
func (t *Tape) Load(ctx context.Context) ([]LogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.LoadSync()
}

// SaveSync writes the full serialized log to path + ".log", overwriting
// any existing content. There is no incremental append: saving after a
// prior load is append-like only because the in-memory log already holds
// the loaded records plus new ones.
//
// A missing parent directory fails with CodeMissingDirectory. A tape
// without a configured path is memory-only and SaveSync is a no-op.
//
// Two processes saving to the same path race; the last writer wins.
func (t *Tape) SaveSync() error {
	if t.path == "" {
		return nil
	}

	dir := filepath.Dir(t.path)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return newMissingDirectoryError(t.path)
	}

	return os.WriteFile(t.logFile(), []byte(t.Stringify()), 0644)
}

// Save is the context-aware variant of SaveSync. Both produce
// byte-identical output for identical in-memory state.
func (t *Tape) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.SaveSync()
}
