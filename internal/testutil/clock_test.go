package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_AdvancesByStep(t *testing.T) {
	c := NewFixedClock(1000, 50)
	assert.Equal(t, int64(1000), c.Now())
	assert.Equal(t, int64(1050), c.Now())
	assert.Equal(t, int64(1100), c.Now())
}

func TestFixedClock_Reset(t *testing.T) {
	c := NewFixedClock(1000, 50)
	c.Now()
	c.Now()
	c.Reset()
	assert.Equal(t, int64(1000), c.Now())
}

func TestSampleRecords_Deterministic(t *testing.T) {
	a := SampleRecords("lookup-task", 3)
	b := SampleRecords("lookup-task", 3)
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)
	assert.Equal(t, "lookup-task", a[0].Name)
}
