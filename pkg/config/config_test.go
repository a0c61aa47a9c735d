package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Default()
	testConfig.Persona = "peer"
	testConfig.Output = OutputTable
	testConfig.Scoring.MinAnswerWords = 40
	testConfig.Batch.Workers = 2

	data, err := json.MarshalIndent(testConfig, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	// Test loading the config.
	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, testConfig, cfg)
	assert.Equal(t, 40, cfg.Scoring.Options().MinAnswerWords)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("persona: recruiter\nscoring:\n  max_penalty: 25\n"), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "recruiter", cfg.Persona)
	assert.Equal(t, 25, cfg.Scoring.MaxPenalty)
	assert.Equal(t, Default().Scoring.MinAnswerWords, cfg.Scoring.MinAnswerWords)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INTERVIEW_COACH_PERSONA", "peer")
	t.Setenv("INTERVIEW_COACH_SCORING_MIN_ANSWER_WORDS", "50")
	t.Setenv("INTERVIEW_COACH_LOGGING_JSON", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "peer", cfg.Persona)
	assert.Equal(t, 50, cfg.Scoring.MinAnswerWords)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"persona": "ceo"}`), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown persona")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantError: false},
		{name: "unknown persona", mutate: func(c *Config) { c.Persona = "cto" }, wantError: true},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, wantError: true},
		{name: "zero min words", mutate: func(c *Config) { c.Scoring.MinAnswerWords = 0 }, wantError: true},
		{name: "negative penalty", mutate: func(c *Config) { c.Scoring.MaxPenalty = -1 }, wantError: true},
		{name: "short cap too high", mutate: func(c *Config) { c.Scoring.ShortAnswerCap = 60 }, wantError: true},
		{name: "flag cap too high", mutate: func(c *Config) { c.Scoring.FlagCountCap = 75 }, wantError: true},
		{name: "no workers", mutate: func(c *Config) { c.Batch.Workers = 0 }, wantError: true},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()

	jsonPath, err := InitConfig(filepath.Join(tmpDir, "nested", "config.json"))
	require.NoError(t, err)

	loaded, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)

	// Refuses to overwrite.
	_, err = InitConfig(jsonPath)
	assert.Error(t, err)
}

func TestInitConfigTOML(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := InitConfig(filepath.Join(tmpDir, "config.toml"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, Default(), decoded)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestInitConfigUnsupportedFormat(t *testing.T) {
	_, err := InitConfig(filepath.Join(t.TempDir(), "config.ini"))
	assert.Error(t, err)
}

func TestInitConfigDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".interview-coach", "config.json"), path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
