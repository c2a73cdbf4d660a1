package tape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Stringify serializes the log as JSONL: one JSON object per line, in
// log order, each line terminated by '\n'. This is the on-disk and
// transport format.
func (t *Tape) Stringify() string {
	return Render(t.log)
}

// Render serializes an arbitrary record list as JSONL, independent of
// any tape. HTML escaping is disabled so stored values round-trip
// byte-for-byte regardless of content.
func Render(records []LogRecord) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		// Values are snapshotted at capture: anything JSON cannot
		// represent is already null, so Encode cannot fail for records
		// built through Push or Parse.
		_ = enc.Encode(rec)
	}
	return buf.String()
}

// Parse decodes JSONL content into an ordered list of log records.
// Empty lines are discarded. Parse does not mutate any tape; Load layers
// the replace-in-memory semantics on top of it.
func Parse(content string) ([]LogRecord, error) {
	lines := strings.Split(content, "\n")
	records := make([]LogRecord, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec LogRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", i+1, err)
		}
		if rec.Name == "" {
			if rec.TaskName != "" {
				rec.Name = rec.TaskName
			} else {
				rec.Name = DefaultRecordName
			}
		}
		if !rec.Type.Valid() {
			rec.Type = classify(rec.Output, rec.Error)
		}
		records = append(records, rec)
	}
	return records, nil
}
