package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper resets viper to a clean state for each test
func resetViper() {
	viper.Reset()
}

// chdirTemp moves the test into an empty directory so no rc files are found
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
	return tmpDir
}

func TestLoadDefaults(t *testing.T) {
	resetViper()
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Scoring)
	assert.Equal(t, "human", cfg.Output)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Empty(t, cfg.Provider)
	assert.Empty(t, cfg.TablesFile)
	assert.Contains(t, cfg.CachePath, ".foodcheck")
}

func TestLoadFromYAMLFile(t *testing.T) {
	resetViper()
	tmpDir := chdirTemp(t)

	content := `
scoring: local
output: json
timeoutSeconds: 10
allergens:
  - Peanuts
  - Dairy
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".foodcheckrc.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Scoring)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, []string{"Peanuts", "Dairy"}, cfg.Allergens)
}

func TestLoadEnvOverride(t *testing.T) {
	resetViper()
	chdirTemp(t)
	t.Setenv("FOODCHECK_SCORING", "ai")
	t.Setenv("FOODCHECK_PROVIDER", "openai")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ai", cfg.Scoring)
	assert.Equal(t, "openai", cfg.Provider)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad scoring", map[string]string{"FOODCHECK_SCORING": "hybrid"}},
		{"bad output", map[string]string{"FOODCHECK_OUTPUT": "xml"}},
		{"bad provider", map[string]string{"FOODCHECK_PROVIDER": "gemini"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateConfigTimeout(t *testing.T) {
	cfg := &Config{Scoring: "auto", Output: "human", TimeoutSeconds: 0}
	assert.Error(t, validateConfig(cfg))

	cfg.TimeoutSeconds = 1
	assert.NoError(t, validateConfig(cfg))
}
