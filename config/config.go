// Package config holds the tunables of the question answering engine and
// loads them from YAML or JSON-with-comments files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileMatches     = 1
	DefaultSentenceMatches = 1
	DefaultAddr            = "127.0.0.1:6969"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// FileMatches is how many files survive the document pass.
	FileMatches int `yaml:"file_matches" json:"file_matches"`
	// SentenceMatches is how many sentences are answered.
	SentenceMatches int `yaml:"sentence_matches" json:"sentence_matches"`

	// Stopwords are added to the English stopword list.
	Stopwords []string `yaml:"stopwords" json:"stopwords"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	// Addr is where the HTTP server listens.
	Addr string `yaml:"addr" json:"addr"`
}

func Default() *Config {
	return &Config{
		FileMatches:     DefaultFileMatches,
		SentenceMatches: DefaultSentenceMatches,
		LogLevel:        "info",
		LogFormat:       "auto",
		Addr:            DefaultAddr,
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml or .json/.jsonc.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return fmt.Errorf("config.Load: unsupported config format `%s`: %w", path, ErrInvalid)
	}
	if err != nil {
		return fmt.Errorf("config.Load: cannot parse `%s`: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.FileMatches < 1 {
		return fmt.Errorf("file_matches must be at least 1, got %d: %w", c.FileMatches, ErrInvalid)
	}
	if c.SentenceMatches < 1 {
		return fmt.Errorf("sentence_matches must be at least 1, got %d: %w", c.SentenceMatches, ErrInvalid)
	}
	return nil
}
