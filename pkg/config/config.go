package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. INTERVIEW_COACH_SCORING_MAX_PENALTY.
const EnvPrefix = "INTERVIEW_COACH"

// Output formats.
const (
	OutputJSON     = "json"
	OutputTable    = "table"
	OutputMarkdown = "markdown"
)

// maxCap is the exclusive upper bound for ceiling caps.
const maxCap = 60

// Config represents the application configuration.
type Config struct {
	Persona string        `mapstructure:"persona" json:"persona" toml:"persona"`
	Output  string        `mapstructure:"output" json:"output" toml:"output"`
	Scoring ScoringConfig `mapstructure:"scoring" json:"scoring" toml:"scoring"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging" toml:"logging"`
	Server  ServerConfig  `mapstructure:"server" json:"server" toml:"server"`
	Batch   BatchConfig   `mapstructure:"batch" json:"batch" toml:"batch"`
}

// ScoringConfig holds scoring thresholds.
type ScoringConfig struct {
	MinAnswerWords   int `mapstructure:"min_answer_words" json:"min_answer_words" toml:"min_answer_words"`
	MinAnswerChars   int `mapstructure:"min_answer_chars" json:"min_answer_chars" toml:"min_answer_chars"`
	ShortAnswerCap   int `mapstructure:"short_answer_cap" json:"short_answer_cap" toml:"short_answer_cap"`
	FlagCeilingCount int `mapstructure:"flag_ceiling_count" json:"flag_ceiling_count" toml:"flag_ceiling_count"`
	FlagCountCap     int `mapstructure:"flag_count_cap" json:"flag_count_cap" toml:"flag_count_cap"`
	MaxPenalty       int `mapstructure:"max_penalty" json:"max_penalty" toml:"max_penalty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	JSON  bool `mapstructure:"json" json:"json" toml:"json"`
	Debug bool `mapstructure:"debug" json:"debug" toml:"debug"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" json:"addr" toml:"addr"`
	ReadTimeout int    `mapstructure:"read_timeout" json:"read_timeout" toml:"read_timeout"` // seconds
}

// BatchConfig holds batch scoring settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers" json:"workers" toml:"workers"`
}

// Options converts the thresholds into scorer options.
func (s ScoringConfig) Options() (opts scorer.Options) {
	opts = scorer.Options{
		MinAnswerWords:   s.MinAnswerWords,
		MinAnswerChars:   s.MinAnswerChars,
		ShortAnswerCap:   s.ShortAnswerCap,
		FlagCeilingCount: s.FlagCeilingCount,
		FlagCountCap:     s.FlagCountCap,
		MaxPenalty:       s.MaxPenalty,
	}
	return opts
}

// ReadTimeoutDuration returns the read timeout as a duration.
func (s ServerConfig) ReadTimeoutDuration() (d time.Duration) {
	d = time.Duration(s.ReadTimeout) * time.Second
	return d
}

// Default returns the built-in configuration.
func Default() (cfg Config) {
	opts := scorer.DefaultOptions()
	cfg = Config{
		Persona: string(scorer.DefaultPersona),
		Output:  OutputJSON,
		Scoring: ScoringConfig{
			MinAnswerWords:   opts.MinAnswerWords,
			MinAnswerChars:   opts.MinAnswerChars,
			ShortAnswerCap:   opts.ShortAnswerCap,
			FlagCeilingCount: opts.FlagCeilingCount,
			FlagCountCap:     opts.FlagCountCap,
			MaxPenalty:       opts.MaxPenalty,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			ReadTimeout: 10,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
	return cfg
}

// DefaultPath returns ~/.interview-coach/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".interview-coach", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// An explicit path must exist; without one, ~/.interview-coach/config.* is
// read when present and built-in defaults are used otherwise.
func Load(configPath string) (cfg Config, err error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Determine config file location
	if configPath != "" {
		_, err = os.Stat(configPath)
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'interview-coach init' to create)", configPath)
			return cfg, err
		}
		v.SetConfigFile(configPath)
	} else {
		var path string
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
	}

	// Read config file
	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			err = errors.Wrap(err, "failed to read config file")
			return cfg, err
		}
		err = nil
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to parse config")
		return cfg, err
	}

	// Validate
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("persona", cfg.Persona)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("scoring.min_answer_words", cfg.Scoring.MinAnswerWords)
	v.SetDefault("scoring.min_answer_chars", cfg.Scoring.MinAnswerChars)
	v.SetDefault("scoring.short_answer_cap", cfg.Scoring.ShortAnswerCap)
	v.SetDefault("scoring.flag_ceiling_count", cfg.Scoring.FlagCeilingCount)
	v.SetDefault("scoring.flag_count_cap", cfg.Scoring.FlagCountCap)
	v.SetDefault("scoring.max_penalty", cfg.Scoring.MaxPenalty)
	v.SetDefault("logging.json", cfg.Logging.JSON)
	v.SetDefault("logging.debug", cfg.Logging.Debug)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("batch.workers", cfg.Batch.Workers)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() (err error) {
	if !scorer.Persona(c.Persona).Valid() {
		err = errors.Errorf("unknown persona %q (want recruiter, hiring-manager or peer)", c.Persona)
		return err
	}

	switch c.Output {
	case OutputJSON, OutputTable, OutputMarkdown:
	default:
		err = errors.Errorf("unknown output format %q (want json, table or markdown)", c.Output)
		return err
	}

	thresholds := []struct {
		key   string
		value int
	}{
		{"scoring.min_answer_words", c.Scoring.MinAnswerWords},
		{"scoring.min_answer_chars", c.Scoring.MinAnswerChars},
		{"scoring.short_answer_cap", c.Scoring.ShortAnswerCap},
		{"scoring.flag_ceiling_count", c.Scoring.FlagCeilingCount},
		{"scoring.flag_count_cap", c.Scoring.FlagCountCap},
		{"scoring.max_penalty", c.Scoring.MaxPenalty},
		{"server.read_timeout", c.Server.ReadTimeout},
		{"batch.workers", c.Batch.Workers},
	}
	for _, th := range thresholds {
		if th.value <= 0 {
			err = errors.Errorf("%s must be positive", th.key)
			return err
		}
	}

	if c.Scoring.ShortAnswerCap >= maxCap {
		err = errors.Errorf("scoring.short_answer_cap must be below %d", maxCap)
		return err
	}

	if c.Scoring.FlagCountCap >= maxCap {
		err = errors.Errorf("scoring.flag_count_cap must be below %d", maxCap)
		return err
	}

	if c.Server.Addr == "" {
		err = errors.New("server.addr is required in config")
		return err
	}

	return err
}

// InitConfig creates a default configuration file. Paths ending in .toml
// are written as TOML, everything else as JSON.
func InitConfig(configPath string) (path string, err error) {
	// Determine config file location
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	// Encode
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(Default())
	case ".json":
		data, err = json.MarshalIndent(Default(), "", "  ")
	default:
		err = errors.Errorf("unsupported config format: %s (use .json or .toml)", filepath.Ext(path))
		return path, err
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
