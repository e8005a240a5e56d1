package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestEnv isolates every environment variable Load consults.
func setTestEnv(t *testing.T, home string) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv(ProjectsDirEnv, "")
	t.Setenv(CursorChatsEnv, "")
	t.Setenv(DataDirEnv, "")
	t.Setenv(WorkspaceRootEnv, "")
}

func TestDefaults(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".claude", "projects"), cfg.ProjectsDir)
	assert.Equal(t, filepath.Join(home, ".cursor", "chats"), cfg.CursorChatsDir)
	assert.Equal(t, filepath.Join(home, ".agentdirs"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "workspace"), cfg.WorkspaceRoot)
	assert.Equal(t, DefaultRecencyThreshold, cfg.RecencyThreshold)
	assert.Equal(t,
		filepath.Join(home, ".agentdirs", "projects.json"),
		cfg.RegistryPath,
	)
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)
	t.Setenv(ProjectsDirEnv, "/custom/projects")
	t.Setenv(CursorChatsEnv, "/custom/chats")
	t.Setenv(WorkspaceRootEnv, "/custom/workspace")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/custom/projects", cfg.ProjectsDir)
	assert.Equal(t, "/custom/chats", cfg.CursorChatsDir)
	assert.Equal(t, "/custom/workspace", cfg.WorkspaceRoot)
}

func TestConfigFileLayer(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	dataDir := filepath.Join(home, ".agentdirs")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	// Comments and trailing commas are tolerated.
	content := `{
		// primary store lives on a shared drive
		"projects_dir": "/mnt/shared/projects",
		"recency_threshold": 0.5,
	}`
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "config.json"),
		[]byte(content), 0o600,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/mnt/shared/projects", cfg.ProjectsDir)
	assert.Equal(t, 0.5, cfg.RecencyThreshold)
	// Untouched fields keep their defaults.
	assert.Equal(t, filepath.Join(home, ".cursor", "chats"), cfg.CursorChatsDir)
}

func TestEnvBeatsFile(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	dataDir := filepath.Join(home, ".agentdirs")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "config.json"),
		[]byte(`{"projects_dir": "/from/file"}`), 0o600,
	))
	t.Setenv(ProjectsDirEnv, "/from/env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.ProjectsDir)
}

func TestDataDirEnvMovesConfigFile(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	custom := filepath.Join(home, "custom-data")
	require.NoError(t, os.MkdirAll(custom, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(custom, "config.json"),
		[]byte(`{"workspace_root": "/via/custom"}`), 0o600,
	))
	t.Setenv(DataDirEnv, custom)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.DataDir)
	assert.Equal(t, "/via/custom", cfg.WorkspaceRoot)
	assert.Equal(t, filepath.Join(custom, "projects.json"), cfg.RegistryPath)
}

func TestInvalidThresholdFallsBack(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	dataDir := filepath.Join(home, ".agentdirs")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "config.json"),
		[]byte(`{"recency_threshold": 7.5}`), 0o600,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultRecencyThreshold, cfg.RecencyThreshold)
}

func TestMalformedConfigFileErrors(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, home)

	dataDir := filepath.Join(home, ".agentdirs")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "config.json"),
		[]byte("{definitely broken"), 0o600,
	))

	_, err := Load()
	require.Error(t, err)
}
