package tape

import (
	"encoding/json"
	"reflect"
)

// DefaultRecordName tags records that arrive without a task name.
const DefaultRecordName = "anonymous"

// RecordType classifies an execution record's outcome.
//
// The three variants are closed: parsing and classification only ever
// produce one of the constants below, and consumers switch exhaustively
// on them instead of probing which optional field happens to be set.
type RecordType string

const (
	// TypeSuccess marks a run that produced a concrete output.
	TypeSuccess RecordType = "success"

	// TypeError marks a run that failed with an error message.
	TypeError RecordType = "error"

	// TypePending marks a run with neither an output nor an error.
	TypePending RecordType = "pending"
)

// Valid reports whether t is one of the defined record types.
func (t RecordType) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypePending:
		return true
	}
	return false
}

// CallTiming captures wall-clock timing for a single boundary call.
// Times are unix milliseconds; Duration is milliseconds.
type CallTiming struct {
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
	Duration  int64 `json:"duration"`
}

// BoundaryCall is one recorded invocation of one named boundary.
//
// Output and Error are always serialized, null when absent, so replay
// consumers never need to branch on which field is present. Timing is
// forwarded unchanged from capture when the engine recorded it.
type BoundaryCall struct {
	Input  []any       `json:"input"`
	Output any         `json:"output"`
	Error  *string     `json:"error"`
	Timing *CallTiming `json:"timing,omitempty"`
}

// ExecutionRecord is one completed workflow run as handed over by the
// execution engine: the run's own input and outcome plus every boundary
// call made during it. Produced once per run, consumed exactly once by
// Tape.Push.
type ExecutionRecord struct {
	Input      any                       `json:"input"`
	Output     any                       `json:"output,omitempty"`
	Error      *string                   `json:"error,omitempty"`
	Boundaries map[string][]BoundaryCall `json:"boundaries"`
	TaskName   string                    `json:"taskName,omitempty"`
	Metadata   map[string]string         `json:"metadata,omitempty"`
	Type       RecordType                `json:"type,omitempty"`
}

// LogRecord is the unit stored on the tape: a normalized ExecutionRecord
// tagged with a required name and a resolved type.
type LogRecord struct {
	Name       string                    `json:"name"`
	Type       RecordType                `json:"type"`
	Input      any                       `json:"input"`
	Output     any                       `json:"output,omitempty"`
	Error      *string                   `json:"error,omitempty"`
	Boundaries map[string][]BoundaryCall `json:"boundaries"`
	TaskName   string                    `json:"taskName,omitempty"`
	Metadata   map[string]string         `json:"metadata,omitempty"`
}

// LegacyItem is the historical two-field append shape: input plus either
// an output or an error. An item defining neither is rejected with
// CodeInvalidLogItem rather than silently stored as pending.
type LegacyItem struct {
	Input  []any
	Output any
	Error  *string
}

// classify resolves a record type from the outcome fields.
// Success wins when an output is present; error otherwise when an error
// message is present; pending when neither is.
func classify(output any, errMsg *string) RecordType {
	switch {
	case output != nil:
		return TypeSuccess
	case errMsg != nil:
		return TypeError
	default:
		return TypePending
	}
}

// snapshotValue converts a captured value into its point-in-time,
// serializable form. Live asynchronous handles (channels, functions)
// cannot be stored on a tape and are replaced with null, as is any
// value JSON cannot represent (NaN, infinities, self-referential
// structures). Every value that survives the snapshot is encodable, so
// serialization never loses a record.
func snapshotValue(v any) any {
	if v == nil {
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Chan, reflect.Func:
		return nil
	}
	if _, err := json.Marshal(v); err != nil {
		return nil
	}
	return v
}

// snapshotArgs snapshots each captured argument individually, so one
// unserializable argument does not null out its siblings.
func snapshotArgs(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = snapshotValue(a)
	}
	return out
}

// formatBoundaries normalizes raw boundary call entries into the uniform
// {input, output, error} shape. Inputs and outputs pass through the value
// snapshot; error stays null unless captured. Timing is forwarded
// unchanged. A nil map normalizes to an empty one so serialized records
// always carry a boundaries object.
func formatBoundaries(raw map[string][]BoundaryCall) map[string][]BoundaryCall {
	formatted := make(map[string][]BoundaryCall, len(raw))
	for name, calls := range raw {
		entries := make([]BoundaryCall, len(calls))
		for i, call := range calls {
			entries[i] = BoundaryCall{
				Input:  snapshotArgs(call.Input),
				Output: snapshotValue(call.Output),
				Error:  call.Error,
				Timing: call.Timing,
			}
		}
		formatted[name] = entries
	}
	return formatted
}

// mergeMetadata merges record metadata with the append call's metadata
// argument. The call-site argument wins on key collision. Returns nil
// when both inputs are empty so the field is omitted from JSON.
func mergeMetadata(recordMeta, callMeta map[string]string) map[string]string {
	if len(recordMeta) == 0 && len(callMeta) == 0 {
		return nil
	}
	merged := make(map[string]string, len(recordMeta)+len(callMeta))
	for k, v := range recordMeta {
		merged[k] = v
	}
	for k, v := range callMeta {
		merged[k] = v
	}
	return merged
}

// normalizeRecord converts an ExecutionRecord into the LogRecord stored
// on the tape. An explicit record type is respected; otherwise the type
// is classified from the outcome fields.
func normalizeRecord(rec ExecutionRecord, meta map[string]string) LogRecord {
	name := rec.TaskName
	if name == "" {
		name = DefaultRecordName
	}

	output := snapshotValue(rec.Output)

	recType := rec.Type
	if !recType.Valid() {
		recType = classify(output, rec.Error)
	}

	return LogRecord{
		Name:       name,
		Type:       recType,
		Input:      snapshotValue(rec.Input),
		Output:     output,
		Error:      rec.Error,
		Boundaries: formatBoundaries(rec.Boundaries),
		TaskName:   rec.TaskName,
		Metadata:   mergeMetadata(rec.Metadata, meta),
	}
}
