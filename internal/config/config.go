// Package config resolves agentdirs configuration by layering
// defaults, an optional config file, and environment variables.
// Precedence: defaults < config file < env.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Environment variables consulted by Load. WorkspaceRootEnv is also
// re-read on every provisioning operation so a changed environment
// takes effect without restarting the process; validation of each
// distinct value is cached by the project service.
const (
	ProjectsDirEnv   = "CLAUDE_PROJECTS_DIR"
	CursorChatsEnv   = "CURSOR_CHATS_DIR"
	DataDirEnv       = "AGENTDIRS_DATA_DIR"
	WorkspaceRootEnv = "AGENTDIRS_WORKSPACE_ROOT"
)

// DefaultRecencyThreshold is the fraction of the most frequent cwd's
// occurrence count that the most recent cwd must reach for recency
// to win during directory extraction.
const DefaultRecencyThreshold = 0.25

// Config holds all agentdirs configuration.
type Config struct {
	// ProjectsDir is the primary store root: one subdirectory per
	// project, each holding JSONL event logs.
	ProjectsDir string `json:"projects_dir"`

	// CursorChatsDir is the secondary store root: subdirectories
	// named by the MD5 hex digest of an absolute project path.
	CursorChatsDir string `json:"cursor_chats_dir"`

	// DataDir holds agentdirs' own files (config, project registry).
	DataDir string `json:"data_dir"`

	// WorkspaceRoot is the default root under which new project
	// directories are provisioned. WorkspaceRootEnv overrides it.
	WorkspaceRoot string `json:"workspace_root"`

	// RecencyThreshold tunes the directory extractor's
	// recency-vs-frequency tradeoff.
	RecencyThreshold float64 `json:"recency_threshold"`

	// RegistryPath is derived from DataDir, never configured
	// directly.
	RegistryPath string `json:"-"`
}

// Default returns a Config with default values rooted in the user's
// home directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf(
			"determining home directory: %w", err,
		)
	}
	return Config{
		ProjectsDir:      filepath.Join(home, ".claude", "projects"),
		CursorChatsDir:   filepath.Join(home, ".cursor", "chats"),
		DataDir:          filepath.Join(home, ".agentdirs"),
		WorkspaceRoot:    filepath.Join(home, "workspace"),
		RecencyThreshold: DefaultRecencyThreshold,
	}, nil
}

// Load builds a Config by layering defaults, the config file, and
// environment variables. The data dir env var is applied before the
// file layer because it decides where the config file lives.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv(DataDirEnv); v != "" {
		cfg.DataDir = v
	}
	if err := cfg.loadFile(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	cfg.loadEnv()

	if cfg.RecencyThreshold <= 0 || cfg.RecencyThreshold > 1 {
		cfg.RecencyThreshold = DefaultRecencyThreshold
	}
	cfg.RegistryPath = filepath.Join(cfg.DataDir, "projects.json")
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.DataDir, "config.json")
}

// loadFile applies settings from <DataDir>/config.json. The file may
// carry // and /* */ comments and trailing commas; jsonc rewrites it
// to strict JSON before unmarshaling. A missing file is not an error.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.configPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var file struct {
		ProjectsDir      string  `json:"projects_dir"`
		CursorChatsDir   string  `json:"cursor_chats_dir"`
		WorkspaceRoot    string  `json:"workspace_root"`
		RecencyThreshold float64 `json:"recency_threshold"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if file.ProjectsDir != "" {
		c.ProjectsDir = file.ProjectsDir
	}
	if file.CursorChatsDir != "" {
		c.CursorChatsDir = file.CursorChatsDir
	}
	if file.WorkspaceRoot != "" {
		c.WorkspaceRoot = file.WorkspaceRoot
	}
	if file.RecencyThreshold > 0 {
		c.RecencyThreshold = file.RecencyThreshold
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(ProjectsDirEnv); v != "" {
		c.ProjectsDir = v
	}
	if v := os.Getenv(CursorChatsEnv); v != "" {
		c.CursorChatsDir = v
	}
	if v := os.Getenv(WorkspaceRootEnv); v != "" {
		c.WorkspaceRoot = v
	}
}
