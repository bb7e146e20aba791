package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vyc.yaml", `name: token
sources:
  - contracts/*.vy
emit: yaml
out_dir: out
jobs: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Name:    "token",
		Sources: []string{"contracts/*.vy"},
		Emit:    "yaml",
		OutDir:  "out",
		Jobs:    4,
	}, cfg)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vyc.toml", `Name = "vault"
Sources = ["src"]
Jobs = 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vault", cfg.Name)
	assert.Equal(t, []string{"src"}, cfg.Sources)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, Default.Emit, cfg.Emit)
	assert.Equal(t, Default.OutDir, cfg.OutDir)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vyc.yaml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default.Sources, cfg.Sources)
	assert.Equal(t, "tree", cfg.Emit)
	assert.Equal(t, "build", cfg.OutDir)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown toml field", "a.toml", "Target = \"wasm\"\n"},
		{"unknown yaml field", "b.yaml", "target: wasm\n"},
		{"negative jobs", "c.yaml", "jobs: -1\n"},
		{"unsupported format", "d.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	_, ok := Find(dir)
	assert.False(t, ok)

	want := writeFile(t, dir, "vyc.toml", "")
	got, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
