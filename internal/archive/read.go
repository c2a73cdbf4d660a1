package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/retracehq/retrace/internal/tape"
)

// ErrTapeNotFound is returned when reading a tape that was never saved.
var ErrTapeNotFound = errors.New("tape not found")

// TapeInfo summarizes one archived tape.
type TapeInfo struct {
	Name      string `json:"name"`
	Records   int    `json:"records"`
	UpdatedAt string `json:"updated_at"`
}

// LoadTape returns the named tape's records in archive order.
// Ordering is deterministic: ORDER BY seq ASC, id ASC COLLATE BINARY.
func (a *Archive) LoadTape(ctx context.Context, tapeName string) ([]tape.LogRecord, error) {
	var exists int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tapes WHERE name = ?`, tapeName).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("load tape %q: %w", tapeName, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("load tape %q: %w", tapeName, ErrTapeNotFound)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT body FROM records
		WHERE tape_name = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, tapeName)
	if err != nil {
		return nil, fmt.Errorf("load tape %q: %w", tapeName, err)
	}
	defer rows.Close()

	records := make([]tape.LogRecord, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec tape.LogRecord
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// ListTapes returns a summary of every archived tape, ordered by name.
func (a *Archive) ListTapes(ctx context.Context) ([]TapeInfo, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT t.name, COUNT(r.id), t.updated_at
		FROM tapes t
		LEFT JOIN records r ON r.tape_name = t.name
		GROUP BY t.name
		ORDER BY t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tapes: %w", err)
	}
	defer rows.Close()

	infos := make([]TapeInfo, 0)
	for rows.Next() {
		var info TapeInfo
		if err := rows.Scan(&info.Name, &info.Records, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tape info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tapes: %w", err)
	}

	return infos, nil
}

// recordCount returns the number of records archived for a tape.
// Used for testing.
func (a *Archive) recordCount(ctx context.Context, tapeName string) (int, error) {
	var count int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE tape_name = ?`, tapeName).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
