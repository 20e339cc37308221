package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"job_url": "https://example.com/job",
		"portfolio_urls": ["https://example.com/case-study"],
		"semantic_rerank": true,
		"evidence_limit": 1000,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, []string{"https://example.com/case-study"}, cfg.PortfolioURLs)
	assert.True(t, cfg.SemanticRerank)
	assert.Equal(t, 1000, cfg.EvidenceLimit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

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
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("jd"), 0644))

	cfg := &Config{Job: jobFile, JobURL: "https://example.com/job"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_BadURL(t *testing.T) {
	cfg := &Config{JobURL: "not a url"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeEvidenceLimit(t *testing.T) {
	cfg := &Config{EvidenceLimit: -1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingFile(t *testing.T) {
	cfg := &Config{Resume: "/nonexistent/resume.txt"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestValidate_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		JobURL:        "https://default.example.com/job",
		APIKey:        "default-key",
		DatabaseURL:   "postgres://localhost/gap",
		EvidenceLimit: 500,
	}

	partial := Config{JobURL: "https://custom.example.com/job"}
	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "https://custom.example.com/job", merged.JobURL)

	// Default values should fill in empty fields
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "postgres://localhost/gap", merged.DatabaseURL)
	assert.Equal(t, 500, merged.EvidenceLimit)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Resume: "resume.txt"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, "resume.txt", merged.Resume)
}
