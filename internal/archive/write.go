package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retracehq/retrace/internal/tape"
)

// SaveTape appends the given records to the named tape, creating the
// tape on first use.
//
// Records already present (same fingerprint) are silently skipped via
// ON CONFLICT DO NOTHING, so re-pushing a previously archived tape is
// idempotent. New records are assigned consecutive seq values after the
// current maximum.
func (a *Archive) SaveTape(ctx context.Context, tapeName string, records []tape.LogRecord) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save tape %q: %w", tapeName, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tapes (name, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
	`, tapeName, now, now)
	if err != nil {
		return fmt.Errorf("save tape %q: %w", tapeName, err)
	}

	var nextSeq int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE tape_name = ?
	`, tapeName).Scan(&nextSeq)
	if err != nil {
		return fmt.Errorf("save tape %q: %w", tapeName, err)
	}

	for _, rec := range records {
		fingerprint, err := tape.Fingerprint(rec)
		if err != nil {
			return fmt.Errorf("save tape %q: %w", tapeName, err)
		}

		body, err := marshalRecord(rec)
		if err != nil {
			return fmt.Errorf("save tape %q: %w", tapeName, err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, tape_name, seq, fingerprint, name, type, body)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(tape_name, fingerprint) DO NOTHING
		`,
			uuid.Must(uuid.NewV7()).String(),
			tapeName,
			nextSeq,
			fingerprint,
			rec.Name,
			string(rec.Type),
			body,
		)
		if err != nil {
			return fmt.Errorf("save tape %q: %w", tapeName, err)
		}

		// Only advance seq for records that were actually inserted, so
		// archive positions stay gapless per tape.
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("save tape %q: %w", tapeName, err)
		}
		if inserted > 0 {
			nextSeq++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save tape %q: %w", tapeName, err)
	}
	return nil
}

// DeleteTape removes a tape and all its records.
// Deleting an absent tape is a no-op.
func (a *Archive) DeleteTape(ctx context.Context, tapeName string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM tapes WHERE name = ?`, tapeName); err != nil {
		return fmt.Errorf("delete tape %q: %w", tapeName, err)
	}
	return nil
}

// marshalRecord converts a log record to JSON TEXT for storage.
// HTML escaping is disabled to match the tape wire format.
func marshalRecord(rec tape.LogRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("marshal record %q: %w", rec.Name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
