package tape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

// TestClassify_TypeInference verifies outcome-based classification when
// no explicit type is carried.
func TestClassify_TypeInference(t *testing.T) {
	assert.Equal(t, TypeSuccess, classify(5, nil))
	assert.Equal(t, TypeError, classify(nil, strptr("x")))
	assert.Equal(t, TypePending, classify(nil, nil))

	// Output wins over error when both are present.
	assert.Equal(t, TypeSuccess, classify(true, strptr("x")))
}

func TestNormalizeRecord_ExplicitTypeRespected(t *testing.T) {
	rec := normalizeRecord(ExecutionRecord{
		Input:  []any{1},
		Output: 2,
		Type:   TypePending,
	}, nil)
	assert.Equal(t, TypePending, rec.Type)
}

func TestNormalizeRecord_NameDefaults(t *testing.T) {
	named := normalizeRecord(ExecutionRecord{TaskName: "fetch"}, nil)
	assert.Equal(t, "fetch", named.Name)
	assert.Equal(t, "fetch", named.TaskName)

	anonymous := normalizeRecord(ExecutionRecord{}, nil)
	assert.Equal(t, DefaultRecordName, anonymous.Name)
}

func TestNormalizeRecord_BoundariesAlwaysPresent(t *testing.T) {
	rec := normalizeRecord(ExecutionRecord{Output: 1}, nil)
	require.NotNil(t, rec.Boundaries)
	assert.Empty(t, rec.Boundaries)
}

// TestFormatBoundaries_UniformShape verifies that formatted entries carry
// both output and error uniformly and forward timing unchanged.
func TestFormatBoundaries_UniformShape(t *testing.T) {
	timing := &CallTiming{StartTime: 10, EndTime: 20, Duration: 10}
	raw := map[string][]BoundaryCall{
		"multiply": {
			{Input: []any{5}, Output: 10, Timing: timing},
			{Input: []any{7}, Error: strptr("overflow")},
		},
	}

	formatted := formatBoundaries(raw)
	require.Len(t, formatted["multiply"], 2)

	first := formatted["multiply"][0]
	assert.Equal(t, []any{5}, first.Input)
	assert.Equal(t, 10, first.Output)
	assert.Nil(t, first.Error)
	assert.Equal(t, timing, first.Timing)

	second := formatted["multiply"][1]
	assert.Nil(t, second.Output)
	require.NotNil(t, second.Error)
	assert.Equal(t, "overflow", *second.Error)
}

// TestSnapshotValue_LiveHandlesBecomeNull verifies that unresolved
// asynchronous values are stored as null, not deferred.
func TestSnapshotValue_LiveHandlesBecomeNull(t *testing.T) {
	assert.Nil(t, snapshotValue(make(chan int)))
	assert.Nil(t, snapshotValue(func() {}))

	assert.Equal(t, 42, snapshotValue(42))
	assert.Equal(t, "v", snapshotValue("v"))
	assert.Nil(t, snapshotValue(nil))
}

// TestSnapshotValue_NonJSONValuesBecomeNull verifies that values JSON
// cannot represent are stored as null instead of poisoning the log.
func TestSnapshotValue_NonJSONValuesBecomeNull(t *testing.T) {
	assert.Nil(t, snapshotValue(math.NaN()))
	assert.Nil(t, snapshotValue(math.Inf(1)))
	assert.Nil(t, snapshotValue(complex(1, 2)))

	assert.Equal(t, 1.5, snapshotValue(1.5))
}

func TestNormalizeRecord_NonJSONBoundaryValues(t *testing.T) {
	rec := normalizeRecord(ExecutionRecord{
		Boundaries: map[string][]BoundaryCall{
			"divide": {
				{Input: []any{1.0, math.NaN()}, Output: math.Inf(-1)},
			},
		},
		TaskName: "calc",
	}, nil)

	call := rec.Boundaries["divide"][0]
	assert.Equal(t, []any{1.0, nil}, call.Input)
	assert.Nil(t, call.Output)
}

func TestNormalizeRecord_LiveOutputClassifiesPending(t *testing.T) {
	// A record whose only outcome is a live handle has no concrete
	// output; it classifies as pending once the handle is nulled.
	rec := normalizeRecord(ExecutionRecord{Output: make(chan int)}, nil)
	assert.Nil(t, rec.Output)
	assert.Equal(t, TypePending, rec.Type)
}

func TestMergeMetadata_CallSiteWins(t *testing.T) {
	merged := mergeMetadata(
		map[string]string{"env": "ci", "host": "a"},
		map[string]string{"env": "local"},
	)
	assert.Equal(t, map[string]string{"env": "local", "host": "a"}, merged)

	assert.Nil(t, mergeMetadata(nil, nil))
}

func TestRecordType_Valid(t *testing.T) {
	assert.True(t, TypeSuccess.Valid())
	assert.True(t, TypeError.Valid())
	assert.True(t, TypePending.Valid())
	assert.False(t, RecordType("").Valid())
	assert.False(t, RecordType("failed").Valid())
}
