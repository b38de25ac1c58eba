package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "console", cfg.Output)
	assert.Equal(t, []string{".crn", ".marlea", ".csv"}, cfg.Extensions)
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
	assert.Equal(t, 300*time.Millisecond, cfg.GetWatchDebounce())
	assert.Equal(t, 1000, cfg.Bench.Iterations)
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `output: json
extensions: [.rxn]
noColor: true
database: sqlite://networks.db
bench:
  iterations: 50
  rate: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".marlea.yaml"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, []string{".rxn"}, cfg.Extensions)
	assert.True(t, cfg.GetNoColor())
	assert.Equal(t, "sqlite://networks.db", cfg.Database)
	assert.Equal(t, 50, cfg.Bench.Iterations)
	assert.Equal(t, 1, cfg.Bench.Concurrency, "unset fields keep their defaults")
	assert.Equal(t, 10.0, cfg.Bench.Rate)
	assert.False(t, cfg.IsDefault())
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marlea.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(&Config{
		Output:  "yaml",
		Verbose: BoolPtr(true),
		Bench:   BenchConfig{Concurrency: 4},
	})

	assert.Equal(t, "yaml", merged.Output)
	assert.True(t, merged.GetVerbose())
	assert.False(t, merged.GetNoColor())
	assert.Equal(t, 4, merged.Bench.Concurrency)
	assert.Equal(t, 1000, merged.Bench.Iterations)
	assert.Equal(t, "console", base.Output, "merge must not modify the receiver")
	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marlea.yaml")
	cfg := DefaultConfig()
	cfg.Output = "text"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestIsNetworkFile(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsNetworkFile("a/b/network.crn"))
	assert.True(t, cfg.IsNetworkFile("NETWORK.CSV"))
	assert.False(t, cfg.IsNetworkFile("notes.txt"))
	assert.False(t, cfg.IsNetworkFile("crn"))
}
