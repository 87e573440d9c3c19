package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolatedLoader searches only paths under a temp dir and sees only env
func isolatedLoader(paths []string, env map[string]string) *Loader {
	return &Loader{
		configPaths: paths,
		getenv:      func(k string) string { return env[k] },
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := isolatedLoader([]string{filepath.Join(dir, "missing.yaml")}, nil)

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("Expected default base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "default" {
		t.Errorf("Expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
api:
  base_url: "https://pilly.example.com/api"
  timeout: 5s
ui:
  theme: "minimal"
  start_path: "/search"
log:
  verbose: true
`)

	cfg, err := isolatedLoader(nil, nil).LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.API.BaseURL != "https://pilly.example.com/api" {
		t.Errorf("Expected base URL from file, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.API.Timeout)
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme minimal, got %s", cfg.UI.Theme)
	}
	if cfg.UI.StartPath != "/search" {
		t.Errorf("Expected start path /search, got %s", cfg.UI.StartPath)
	}
	if !cfg.Log.Verbose {
		t.Error("Expected verbose to be true")
	}
	// keys absent from the file keep their defaults
	if !cfg.Session.Watch {
		t.Error("Expected session watch to keep its default")
	}
	if cfg.Session.CredentialFile != DefaultConfig().Session.CredentialFile {
		t.Errorf("Expected default credential file, got %s", cfg.Session.CredentialFile)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	project := writeConfig(t, dir, "project.yaml", `ui:
  theme: "high-contrast"
`)
	system := writeConfig(t, dir, "system.yaml", `ui:
  theme: "minimal"
  no_emoji: true
session:
  watch: false
`)

	cfg, err := isolatedLoader([]string{project, system}, nil).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.UI.Theme != "high-contrast" {
		t.Errorf("Expected project theme to win, got %s", cfg.UI.Theme)
	}
	if !cfg.UI.NoEmoji {
		t.Error("Expected no_emoji from the system file to survive")
	}
	if cfg.Session.Watch {
		t.Error("Expected watch=false from the system file to survive")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
api:
  base_url: "http://localhost/api
  timeout: 5s
`)

	_, err := isolatedLoader(nil, nil).LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "bad-theme.yaml", `ui:
  theme: "neon"
`)

	_, err := isolatedLoader(nil, nil).LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	loader := isolatedLoader(nil, map[string]string{
		"PILLY_API_BASE_URL":            "https://staging.example.com/api",
		"PILLY_API_TIMEOUT":             "2s",
		"PILLY_SESSION_CREDENTIAL_FILE": "/tmp/creds.yaml",
		"PILLY_SESSION_WATCH":           "false",
		"PILLY_UI_NO_EMOJI":             "true",
		"PILLY_UI_START_PATH":           "/community",
		"PILLY_LOG_VERBOSE":             "1",
	})
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.API.BaseURL != "https://staging.example.com/api" {
		t.Errorf("Expected base URL override, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("Expected timeout 2s, got %v", cfg.API.Timeout)
	}
	if cfg.Session.CredentialFile != "/tmp/creds.yaml" {
		t.Errorf("Expected credential file override, got %s", cfg.Session.CredentialFile)
	}
	if cfg.Session.Watch {
		t.Error("Expected watch to be disabled")
	}
	if !cfg.UI.NoEmoji {
		t.Error("Expected no_emoji to be enabled")
	}
	if cfg.UI.StartPath != "/community" {
		t.Errorf("Expected start path override, got %s", cfg.UI.StartPath)
	}
	if !cfg.Log.Verbose {
		t.Error("Expected verbose to be enabled")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid bool", "PILLY_LOG_VERBOSE", "not-a-bool"},
		{"invalid duration", "PILLY_API_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := isolatedLoader(nil, map[string]string{tt.envVar: tt.value})

			err := loader.applyEnvOverrides(DefaultConfig())
			if err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			} else if !strings.Contains(err.Error(), tt.envVar) {
				t.Errorf("Expected error to name %s, got %v", tt.envVar, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.Theme = "minimal"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := isolatedLoader(nil, nil).LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.UI.Theme != "minimal" {
		t.Errorf("Expected saved theme, got %s", loaded.UI.Theme)
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	if err := parseDuration("30s", &duration); err != nil {
		t.Errorf("Failed to parse duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}
	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}
}

func TestParseBool(t *testing.T) {
	var value bool

	if err := parseBool("true", &value); err != nil || !value {
		t.Errorf("Expected true, got %v (%v)", value, err)
	}
	if err := parseBool("false", &value); err != nil || value {
		t.Errorf("Expected false, got %v (%v)", value, err)
	}
	if err := parseBool("not-a-bool", &value); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFileExists(t *testing.T) {
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	tempFile := filepath.Join(t.TempDir(), "test-file")
	if err := os.WriteFile(tempFile, []byte("test"), 0o600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x/y.yaml"); got != filepath.Join(home, "x", "y.yaml") {
		t.Errorf("Expected expanded path, got %s", got)
	}
	if got := ExpandPath("/abs/y.yaml"); got != "/abs/y.yaml" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}
