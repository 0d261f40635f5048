package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"data_file": "my-docs.json",
		"port": 9090,
		"api_key": "test-key",
		"use_browser": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "my-docs.json", cfg.DataFile)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080, RateLimitPerMinute: 10}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := &Config{Port: 70000}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeRateLimit(t *testing.T) {
	cfg := &Config{RateLimitPerMinute: -1}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FlagsWin(t *testing.T) {
	flags := Config{Port: 9000, DataFile: "flag.json"}
	merged := flags.MergeWithDefaults(Config{Port: 8081, DataFile: "file.json", APIKey: "from-file"})

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "flag.json", merged.DataFile)
	assert.Equal(t, "from-file", merged.APIKey)
}

func TestMergeWithDefaults_PackageConstants(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultDataFile, merged.DataFile)
	assert.Equal(t, DefaultOwner, merged.Owner)
	assert.Equal(t, DefaultRateLimitBurst, merged.RateLimitBurst)
}

func TestMergeWithDefaults_ProfileFields(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{ProfileName: "Ada", ProfileEmail: "ada@example.com"})
	assert.Equal(t, "Ada", merged.ProfileName)
	assert.Equal(t, "ada@example.com", merged.ProfileEmail)
}

func TestMergeWithDefaults_APIKeyFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, "env-key", merged.APIKey)
}

func TestMergeWithDefaults_ConfigKeyBeatsEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	merged := (&Config{APIKey: "explicit"}).MergeWithDefaults(Config{})
	assert.Equal(t, "explicit", merged.APIKey)
}
