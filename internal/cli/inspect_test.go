package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retracehq/retrace/internal/tape"
	"github.com/retracehq/retrace/internal/testutil"
)

// writeSampleTape writes a 3-record tape file and returns its base path.
func writeSampleTape(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "weather")
	records := testutil.SampleRecords("weather", 3)
	require.NoError(t, os.WriteFile(base+tape.LogExtension, []byte(tape.Render(records)), 0644))
	return base
}

// execute runs the CLI with the given args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect_Text(t *testing.T) {
	base := writeSampleTape(t)

	out, err := execute(t, "inspect", base)
	require.NoError(t, err)

	assert.Contains(t, out, "records: 3 (success=3 error=0 pending=0)")
	assert.Contains(t, out, "lookup: 3 calls")
}

func TestInspect_JSON(t *testing.T) {
	base := writeSampleTape(t)

	out, err := execute(t, "inspect", base, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   InspectResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Records)
	assert.Equal(t, 3, resp.Data.Success)
	require.Len(t, resp.Data.Boundaries, 1)
	assert.Equal(t, "lookup", resp.Data.Boundaries[0].Name)
	assert.Equal(t, 3, resp.Data.Boundaries[0].Calls)
}

func TestInspect_AcceptsLogSuffix(t *testing.T) {
	base := writeSampleTape(t)

	out, err := execute(t, "inspect", base+tape.LogExtension)
	require.NoError(t, err)
	assert.Contains(t, out, "records: 3")
}

func TestInspect_MissingDirectoryIsCommandError(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "nope", "tape"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInspect_EmptyFirstRunTape(t *testing.T) {
	base := filepath.Join(t.TempDir(), "fresh")

	out, err := execute(t, "inspect", base)
	require.NoError(t, err)
	assert.Contains(t, out, "records: 0")
	assert.Contains(t, out, "boundaries: none")
}

func TestCompile_Text(t *testing.T) {
	base := writeSampleTape(t)

	out, err := execute(t, "compile", base)
	require.NoError(t, err)

	var cache map[string][]tape.BoundaryCall
	require.NoError(t, json.Unmarshal([]byte(out), &cache))
	require.Len(t, cache["lookup"], 3)
	assert.Equal(t, "result-0", cache["lookup"][0].Output)
	assert.Equal(t, "result-2", cache["lookup"][2].Output)
}

func TestCompile_JSON(t *testing.T) {
	base := writeSampleTape(t)

	out, err := execute(t, "compile", base, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string                         `json:"status"`
		Data   map[string][]tape.BoundaryCall `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Data["lookup"], 3)
}
