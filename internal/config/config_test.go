package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG and the working directory at a fresh temp dir and
// clears every TASKR_ variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range []string{"TASKR_DATA_DIR", "TASKR_STORAGE", "TASKR_LIST", "TASKR_LOG_LEVEL", "TASKR_LOG_FILE"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/taskr/taskr.yml", GlobalPath())
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		assert.True(t, filepath.IsAbs(got), "GlobalPath() should return absolute path, got %v", got)
		assert.Equal(t, "taskr.yml", filepath.Base(got))
	})
}

func TestExists(t *testing.T) {
	isolate(t)

	assert.False(t, Exists(), "no config files written yet")

	require.NoError(t, WriteProject(Default()))
	assert.True(t, Exists())

	require.NoError(t, os.Remove(ProjectPath()))
	require.NoError(t, WriteGlobal(Default()))
	assert.True(t, Exists())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{
		DataDir:  "/global/data",
		Storage:  StorageFile,
		List:     "global-list",
		LogLevel: "warn",
	}))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("list: project-list\n"), 0644))

	t.Run("project overrides global", func(t *testing.T) {
		cfg, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, "/global/data", cfg.DataDir)
		assert.Equal(t, StorageFile, cfg.Storage)
		assert.Equal(t, "project-list", cfg.List)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("env overrides files", func(t *testing.T) {
		t.Setenv("TASKR_LIST", "env-list")
		t.Setenv("TASKR_STORAGE", StorageMemory)

		cfg, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, "env-list", cfg.List)
		assert.Equal(t, StorageMemory, cfg.Storage)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("TASKR_LIST", "env-list")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("data-dir", "", "")
		flags.String("storage", "", "")
		flags.String("list", "", "")
		require.NoError(t, flags.Parse([]string{"--list", "flag-list"}))

		cfg, err := Load(flags)
		require.NoError(t, err)
		assert.Equal(t, "flag-list", cfg.List)
		// Unchanged flags must not clobber lower layers with their zero value
		assert.Equal(t, "/global/data", cfg.DataDir)
		assert.Equal(t, StorageFile, cfg.Storage)
	})
}

func TestLoad_InvalidStorage(t *testing.T) {
	isolate(t)
	t.Setenv("TASKR_STORAGE", "sqlite")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"nats with data dir", Config{Storage: StorageNATS, DataDir: ".taskr"}, false},
		{"file with data dir", Config{Storage: StorageFile, DataDir: ".taskr"}, false},
		{"memory without data dir", Config{Storage: StorageMemory}, false},
		{"file without data dir", Config{Storage: StorageFile, DataDir: "  "}, true},
		{"unknown backend", Config{Storage: "redis", DataDir: ".taskr"}, true},
		{"empty backend", Config{DataDir: ".taskr"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:  ".test",
		Storage:  StorageFile,
		List:     "groceries",
		LogLevel: "debug",
		LogFile:  "/tmp/test.log",
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)

	content := string(data)
	for _, field := range []string{
		"data_dir: .test",
		"storage: file",
		"list: groceries",
		"log_level: debug",
		"log_file: /tmp/test.log",
	} {
		assert.Contains(t, content, field)
	}
}
