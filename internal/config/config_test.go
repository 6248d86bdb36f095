package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeConfig(t, `
git: /usr/local/bin/git
dir: /srv/repo
timeout: 30s
format: yaml
verbose: true
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	require.Equal(t, Config{
		Git:     "/usr/local/bin/git",
		Dir:     "/srv/repo",
		Timeout: 30 * time.Second,
		Format:  FormatYAML,
		Verbose: true,
	}, cfg)
	require.Equal(t, "/srv/repo", cfg.GitConfig().Dir)
	require.Equal(t, 30*time.Second, cfg.GitConfig().Timeout)
}

func TestLoad_DefaultPathFromXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "gitout"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "gitout", "gitout.yaml"), []byte("dir: /from/xdg\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, "/from/xdg", cfg.Dir)
	require.Equal(t, FormatJSON, cfg.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GITOUT_TIMEOUT", "5s")
	t.Setenv("GITOUT_FORMAT", "yaml")
	path := writeConfig(t, "timeout: 1m\nformat: json\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, FormatYAML, cfg.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeConfig(t, "format: xml\n")

	_, err := Load(New(), path)
	require.ErrorContains(t, err, "format")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"empty git", func(c *Config) { c.Git = " " }, true},
		{"unknown format", func(c *Config) { c.Format = "toml" }, true},
	}
	for _, tt := range tests {
		cfg := Defaults()
		tt.mutate(&cfg)
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Fatalf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
