package testutil

import (
	"fmt"

	"github.com/retracehq/retrace/internal/tape"
)

// SampleRecords builds n normalized success records for a task, each
// with one timed call to a "lookup" boundary. Timings come from a
// FixedClock so the records are identical across runs.
func SampleRecords(task string, n int) []tape.LogRecord {
	clock := NewFixedClock(1000, 50)

	records := make([]tape.LogRecord, 0, n)
	tp := tape.New()
	for i := 0; i < n; i++ {
		start := clock.Now()
		end := clock.Now()
		rec := tp.Push(tape.ExecutionRecord{
			Input:  []any{fmt.Sprintf("query-%d", i)},
			Output: fmt.Sprintf("result-%d", i),
			Boundaries: map[string][]tape.BoundaryCall{
				"lookup": {
					{
						Input:  []any{fmt.Sprintf("query-%d", i)},
						Output: fmt.Sprintf("result-%d", i),
						Timing: &tape.CallTiming{
							StartTime: start,
							EndTime:   end,
							Duration:  end - start,
						},
					},
				},
			},
			TaskName: task,
		}, nil)
		records = append(records, rec)
	}
	return records
}
