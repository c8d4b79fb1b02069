// Package config defines the engine configuration: where the skill registry
// lives, how matching is bounded, which embedder and storage backend to use.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// StorageMemory keeps resumes and jobs in memory with gob snapshots.
	StorageMemory = "memory"
	// StoragePostgres keeps resumes and jobs in Postgres with pgvector.
	StoragePostgres = "postgres"

	// EmbedderStatic produces deterministic local embeddings (dev/tests).
	EmbedderStatic = "static"
	// EmbedderGemini calls the Gemini embedding API.
	EmbedderGemini = "gemini"
)

// ServerSettings configures the HTTP layer.
type ServerSettings struct {
	Port           string `mapstructure:"port"`
	MaxRequestSize int64  `mapstructure:"max_request_size"` // bytes
}

// RegistrySettings configures the skill registry source.
type RegistrySettings struct {
	Path string `mapstructure:"path"` // JSON skill definitions; fallback vocabulary used when missing
}

// MatchSettings bounds the matching pipeline.
type MatchSettings struct {
	DefaultK        int `mapstructure:"default_k"`
	MaxK            int `mapstructure:"max_k"`
	MaxContextTerms int `mapstructure:"max_context_terms"`
}

// EmbeddingSettings selects and configures the embedding provider.
type EmbeddingSettings struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	Dim      int    `mapstructure:"dim"`
}

// StorageSettings selects and configures the persistence backend.
type StorageSettings struct {
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`      // postgres only
	DataDir string `mapstructure:"data_dir"` // memory driver snapshot directory
}

// Settings is the full engine configuration.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Registry  RegistrySettings  `mapstructure:"registry"`
	Match     MatchSettings     `mapstructure:"match"`
	Embedding EmbeddingSettings `mapstructure:"embedding"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Debug     bool              `mapstructure:"debug"`
	JSONLogs  bool              `mapstructure:"json_logs"`
}

// ApplyDefaults fills in zero values with sane defaults.
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == "" {
		s.Server.Port = "8080"
	}
	if s.Server.MaxRequestSize == 0 {
		s.Server.MaxRequestSize = 10 << 20 // 10 MB, matches the original upload cap
	}
	if s.Match.DefaultK == 0 {
		s.Match.DefaultK = 20
	}
	if s.Match.MaxK == 0 {
		s.Match.MaxK = 200
	}
	if s.Match.MaxK < s.Match.DefaultK {
		s.Match.MaxK = s.Match.DefaultK
	}
	if s.Match.MaxContextTerms == 0 {
		s.Match.MaxContextTerms = 20
	}
	if s.Embedding.Provider == "" {
		s.Embedding.Provider = EmbedderStatic
	}
	if s.Embedding.Model == "" {
		s.Embedding.Model = "gemini-embedding-001"
	}
	if s.Embedding.Dim == 0 {
		s.Embedding.Dim = 384
	}
	if s.Storage.Driver == "" {
		s.Storage.Driver = StorageMemory
	}
	if s.Storage.DataDir == "" {
		s.Storage.DataDir = "./match_data"
	}
}

// Validate returns an error describing the first invalid setting found.
func (s *Settings) Validate() error {
	switch s.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(s.Storage.DSN) == "" {
			return fmt.Errorf("storage driver %q requires a dsn", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", s.Storage.Driver)
	}

	switch s.Embedding.Provider {
	case EmbedderStatic:
	case EmbedderGemini:
		if strings.TrimSpace(s.Embedding.APIKey) == "" {
			return fmt.Errorf("embedding provider %q requires an api key", EmbedderGemini)
		}
	default:
		return fmt.Errorf("unknown embedding provider %q", s.Embedding.Provider)
	}

	if s.Embedding.Dim <= 0 {
		return fmt.Errorf("embedding dim must be positive, got %d", s.Embedding.Dim)
	}
	if s.Match.MaxK <= 0 {
		return fmt.Errorf("match max_k must be positive, got %d", s.Match.MaxK)
	}
	return nil
}

// Load reads settings from viper's merged sources (config file, env,
// bound flags), applies defaults, and validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
