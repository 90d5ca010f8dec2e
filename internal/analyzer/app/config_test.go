package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "access.log", cfg.InputPath)
	assert.Equal(t, EngineMemory, cfg.Engine)
	assert.NoError(t, cfg.Validate())
}

func TestLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: /var/log/nginx/access.log\nengine: sqlite\nreport: out.json\n"), 0o644))

	fileCfg, err := LoadFile(path)
	require.NoError(t, err)
	cfg := Merge(Default(), fileCfg)
	assert.Equal(t, "/var/log/nginx/access.log", cfg.InputPath)
	assert.Equal(t, EngineSQLite, cfg.Engine)
	assert.Equal(t, "charts.html", cfg.ChartsPath)

	t.Setenv("LOGSTAT_ENGINE", "duckdb")
	t.Setenv("LOGSTAT_LISTEN", ":9090")
	cfg = FromEnv(cfg)
	assert.Equal(t, EngineDuckDB, cfg.Engine)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "out.json", cfg.ReportPath)

	cfg = Merge(cfg, Config{InputPath: "-"})
	assert.Equal(t, "-", cfg.InputPath)
	assert.Equal(t, EngineDuckDB, cfg.Engine)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unterminated"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Engine = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.InputPath = ""
	assert.Error(t, cfg.Validate())
}
