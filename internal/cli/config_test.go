package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrace.yaml")
	content := "log_dir: ./logs\narchive: ./retrace.db\nformat: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./logs", cfg.LogDir)
	assert.Equal(t, "./retrace.db", cfg.Archive)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

// TestConfig_SetsDefaultFormat verifies a config-file format applies
// when the flag is left at its default.
func TestConfig_SetsDefaultFormat(t *testing.T) {
	base := writeSampleTape(t)

	cfgPath := filepath.Join(t.TempDir(), "retrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\n"), 0644))

	out, err := execute(t, "inspect", base, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
}

// TestConfig_FlagWinsOverConfig verifies an explicit --format beats the
// config file.
func TestConfig_FlagWinsOverConfig(t *testing.T) {
	base := writeSampleTape(t)

	cfgPath := filepath.Join(t.TempDir(), "retrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\n"), 0644))

	out, err := execute(t, "inspect", base, "--config", cfgPath, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "records: 3")
}

// TestConfig_LogDirResolvesBareNames verifies a bare tape name resolves
// against the configured log directory.
func TestConfig_LogDirResolvesBareNames(t *testing.T) {
	base := writeSampleTape(t)

	cfgPath := filepath.Join(t.TempDir(), "retrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_dir: "+filepath.Dir(base)+"\n"), 0644))

	out, err := execute(t, "inspect", "weather", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "records: 3")
}

// TestConfig_ArchiveDefault verifies the archive path falls back to the
// config file when --db is omitted.
func TestConfig_ArchiveDefault(t *testing.T) {
	base := writeSampleTape(t)
	db := filepath.Join(t.TempDir(), "retrace.db")

	cfgPath := filepath.Join(t.TempDir(), "retrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("archive: "+db+"\n"), 0644))

	out, err := execute(t, "archive", "push", base, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "archived 3 records")
}
