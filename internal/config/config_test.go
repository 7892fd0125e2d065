package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// withHome points HOME at a fresh directory and clears the env overrides.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{KeyDataDir, KeyStore, KeyLogFile, KeyRestSeconds, KeyProgramFile} {
		name := EnvPrefix + "_" + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return home
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := withHome(t)

	cfg, err := Load("upper-lower", nil)
	require.NoError(t, err)

	dataDir := filepath.Join(home, DefaultDirName)
	assert.Equal(t, Config{
		DataDir:       dataDir,
		Store:         "json",
		LogFile:       filepath.Join(dataDir, "upper-lower.log"),
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
		RestSeconds:   120,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Layering(t *testing.T) {
	home := withHome(t)
	writeConfig(t, filepath.Join(home, DefaultDirName, "config.yaml"), `
store: sqlite
rest_seconds: 90
data_dir: ~/training
program_file: ~/my-program.yaml
`)

	cfg, err := Load("upper-lower", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, 90, cfg.RestSeconds)
	assert.Equal(t, filepath.Join(home, "training"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "my-program.yaml"), cfg.ProgramFile)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.yaml"), cfg.ConfigFile)

	t.Setenv("UPPER_LOWER_REST_SECONDS", "60")
	cfg, err = Load("upper-lower", nil)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.RestSeconds, "env beats the file")

	cfg, err = Load("upper-lower", []string{"--rest-seconds=45", "--store", "json"})
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.RestSeconds, "flags beat env")
	assert.Equal(t, "json", cfg.Store)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	home := withHome(t)
	path := filepath.Join(home, "elsewhere.yaml")
	writeConfig(t, path, "log_file: \"-\"\nlog_max_backups: 7\n")

	cfg, err := Load("upper-lower", []string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, StderrLogFile, cfg.LogFile)
	assert.Equal(t, 7, cfg.LogMaxBackups)

	_, err = Load("upper-lower", []string{"--config", filepath.Join(home, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_Help(t *testing.T) {
	withHome(t)
	_, err := Load("upper-lower", []string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)

	_, err = Load("upper-lower", []string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{DataDir: "/tmp/x", Store: "sqlite", RestSeconds: 30, LogMaxSizeMB: 1}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Store = "postgres"
	bad.RestSeconds = 0
	bad.Export = "a.json"
	bad.Import = "b.json"
	err := bad.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}
