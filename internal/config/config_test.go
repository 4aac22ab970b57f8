package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, k := range []string{"TADA_CONFIG", "TADA_BACKEND", "TADA_DATA_DIR", "TADA_KEY",
		"TADA_LOG_LEVEL", "TADA_LOG_FILE", "TADA_THEME", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return home
}

func load(t *testing.T, args ...string) (*Config, []string, error) {
	t.Helper()
	return Load(flag.NewFlagSet("tada", flag.ContinueOnError), args)
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestDefaults(t *testing.T) {
	home := isolate(t)
	cfg, rest, err := load(t, "ls")
	require.NoError(t, err)

	assert.Equal(t, []string{"ls"}, rest)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, DefaultKey, cfg.Key)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, filepath.Join(home, ".local", "share", "tada"), cfg.DataDir)
	assert.Empty(t, cfg.File)
}

func TestUserConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "tada", "config.toml")
	writeConfig(t, path, `
backend = "sqlite"
data_dir = "~/todos"
theme = "neon"
group = true
`)
	cfg, _, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(home, "todos"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "todos", "tada.db"), cfg.SQLitePath())
	assert.Equal(t, "neon", cfg.Theme)
	assert.True(t, cfg.Group)
}

func TestPrecedence(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	writeConfig(t, path, `
backend = "sqlite"
key = "from-file"
log_level = "info"
`)
	t.Setenv("TADA_CONFIG", path)
	t.Setenv("TADA_KEY", "from-env")
	t.Setenv("TADA_LOG_LEVEL", "debug")

	cfg, rest, err := load(t, "-log-level", "error", "-no-color", "add", "milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "milk"}, rest)
	assert.Equal(t, BackendSQLite, cfg.Backend, "file beats default")
	assert.Equal(t, "from-env", cfg.Key, "env beats file")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "never", cfg.Color)
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	_, _, err := load(t, "-config", "/does/not/exist.toml")
	assert.Error(t, err)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"backend", []string{"-backend", "s3"}},
		{"log level", []string{"-log-level", "loud"}},
		{"theme", []string{"-theme", "pink"}},
		{"empty key", []string{"-key", " "}},
		{"bad flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := load(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".config", "tada", "config.toml"), `bakcend = "file"`)
	_, _, err := load(t)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestTUILogFile(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "tada.log"), cfg.TUILogFile())
	cfg.LogFile = "/tmp/x.log"
	assert.Equal(t, "/tmp/x.log", cfg.TUILogFile())
}
