package tape

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestStringify_Golden pins the JSONL wire format against a golden file.
// Regenerate with: go test ./internal/tape -run Golden -update
func TestStringify_Golden(t *testing.T) {
	tp := New()
	tp.Push(ExecutionRecord{
		Input:  []any{map[string]any{"city": "Madrid"}},
		Output: map[string]any{"temp": 21},
		Boundaries: map[string][]BoundaryCall{
			"fetchWeather": {
				{
					Input:  []any{"Madrid"},
					Output: map[string]any{"temp": 21},
					Timing: &CallTiming{StartTime: 1000, EndTime: 1250, Duration: 250},
				},
			},
		},
		TaskName: "weather",
		Metadata: map[string]string{"runner": "ci"},
	}, map[string]string{"attempt": "1"})
	tp.Push(ExecutionRecord{
		Input: []any{map[string]any{"city": "Lisbon"}},
		Error: strptr("service unavailable"),
		Boundaries: map[string][]BoundaryCall{
			"fetchWeather": {
				{Input: []any{"Lisbon"}, Error: strptr("service unavailable")},
			},
		},
		TaskName: "weather",
	}, nil)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "weather_tape", []byte(tp.Stringify()))
}
