package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GREENHOUSE_API_KEY", "GREENHOUSE_BASE_URL", "GREENHOUSE_ON_BEHALF_OF",
		"JOB_ID", "JOB_SKILLS", "JOB_DESCRIPTION", "JOB_CACHE_TTL", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GREENHOUSE_API_KEY", "key")

	cfg, err := Load("", Config{})
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.GreenhouseAPIKey)
	assert.Equal(t, DefaultGreenhouseBaseURL, cfg.GreenhouseBaseURL)
	assert.Equal(t, DefaultOnBehalfOf, cfg.OnBehalfOf)
	assert.Equal(t, DefaultJobID, cfg.JobID)
	assert.Equal(t, "4285367007", cfg.JobIDString())
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Nil(t, cfg.Skills)

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GREENHOUSE_API_KEY", "key")
	t.Setenv("GREENHOUSE_BASE_URL", "http://localhost:9999")
	t.Setenv("GREENHOUSE_ON_BEHALF_OF", "42")
	t.Setenv("JOB_ID", "123")
	t.Setenv("JOB_SKILLS", "Go, SQL ,,Kubernetes")
	t.Setenv("JOB_CACHE_TTL", "0")
	t.Setenv("PORT", "9090")

	cfg, err := Load("", Config{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.GreenhouseBaseURL)
	assert.Equal(t, "42", cfg.OnBehalfOf)
	assert.Equal(t, int64(123), cfg.JobID)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, cfg.Skills)
	assert.Equal(t, 9090, cfg.Port)

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", Config{})
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "GREENHOUSE_API_KEY")
}

func TestLoad_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("GREENHOUSE_API_KEY", "key")

	t.Setenv("JOB_ID", "abc")
	_, err := Load("", Config{})
	assert.ErrorContains(t, err, "JOB_ID")

	t.Setenv("JOB_ID", "")
	t.Setenv("PORT", "eighty")
	_, err = Load("", Config{})
	assert.ErrorContains(t, err, "PORT")
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"greenhouse_api_key": "file-key",
		"job_id": 99,
		"skills": ["Go"],
		"job_cache_ttl": "30s"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "file-key", cfg.GreenhouseAPIKey)
	assert.Equal(t, int64(99), cfg.JobID)
	assert.Equal(t, []string{"Go"}, cfg.Skills)
	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0o644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "negative job id", cfg: Config{JobID: -1}, wantErr: "job_id"},
		{name: "bad base url", cfg: Config{GreenhouseBaseURL: "ftp://x"}, wantErr: "greenhouse_base_url"},
		{name: "bad ttl", cfg: Config{JobCacheTTL: "soon"}, wantErr: "job_cache_ttl"},
		{name: "negative ttl", cfg: Config{JobCacheTTL: "-1m"}, wantErr: "job_cache_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{GreenhouseAPIKey: "flag-key", Port: 9000}
	defaults := Config{
		GreenhouseAPIKey:  "file-key",
		GreenhouseBaseURL: "https://example.test",
		OnBehalfOf:        "7",
		JobID:             55,
		Port:              8080,
		Skills:            []string{"Go"},
		JobCacheTTL:       "5m",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "flag-key", merged.GreenhouseAPIKey)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "https://example.test", merged.GreenhouseBaseURL)
	assert.Equal(t, "7", merged.OnBehalfOf)
	assert.Equal(t, int64(55), merged.JobID)
	assert.Equal(t, []string{"Go"}, merged.Skills)
	assert.Equal(t, "5m", merged.JobCacheTTL)

	// original untouched
	assert.Empty(t, cfg.GreenhouseBaseURL)
}

func TestFromEnv_OnlySetValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOB_ID", "77")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(77), cfg.JobID)
	assert.Zero(t, cfg.Port)
	assert.Empty(t, cfg.GreenhouseBaseURL)
	assert.Empty(t, cfg.GreenhouseAPIKey)
}

func TestLoad_Layering(t *testing.T) {
	clearEnv(t)
	t.Setenv("GREENHOUSE_ON_BEHALF_OF", "env-user")
	t.Setenv("GREENHOUSE_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"greenhouse_api_key": "file-key", "on_behalf_of": "file-user", "job_id": 5, "job_cache_ttl": "30s"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, Config{GreenhouseAPIKey: "flag-key"})
	require.NoError(t, err)

	assert.Equal(t, "flag-key", cfg.GreenhouseAPIKey)
	assert.Equal(t, "env-user", cfg.OnBehalfOf)
	assert.Equal(t, int64(5), cfg.JobID)
	assert.Equal(t, "30s", cfg.JobCacheTTL)
	assert.Equal(t, DefaultGreenhouseBaseURL, cfg.GreenhouseBaseURL)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_KeyFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"greenhouse_api_key": "file-key"}`), 0o600))

	cfg, err := Load(path, Config{})
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.GreenhouseAPIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), Config{GreenhouseAPIKey: "key"})
	assert.Error(t, err)
}

func TestRequire_MissingKey(t *testing.T) {
	cfg := Defaults()
	assert.ErrorContains(t, cfg.Require(), "GREENHOUSE_API_KEY")
}
