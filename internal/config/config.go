package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	// Temperature and TopP are pointers so an explicit 0.0 (deterministic
	// sampling) is distinguishable from unset.
	Temperature *float32 `toml:"temperature"`
	TopP        *float32 `toml:"top_p"`
	TopK        int32    `toml:"top_k"`
	MaxTokens   int      `toml:"max_tokens"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type PipelineConfig struct {
	// Mode selects the generation output: "conversational" (prose plus
	// post-hoc image enrichment) or "structured" (exactly five JSON records).
	Mode                  string `toml:"mode"`
	ImageWorkers          int    `toml:"image_workers"`
	ImageTimeoutSeconds   int    `toml:"image_timeout_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Neo4j    Neo4jConfig    `toml:"neo4j"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a TOML file; credentials are
// expected from the environment in that case.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with the service defaults.
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.LLM.Temperature == nil {
		c.LLM.Temperature = f32(0.7)
	}
	if c.LLM.TopP == nil {
		c.LLM.TopP = f32(0.9)
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = 40
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.Neo4j.URI == "" {
		c.Neo4j.URI = "bolt://localhost:7687"
	}
	if c.Pipeline.Mode == "" {
		c.Pipeline.Mode = "conversational"
	}
	if c.Pipeline.ImageWorkers == 0 {
		c.Pipeline.ImageWorkers = 5
	}
	if c.Pipeline.ImageTimeoutSeconds == 0 {
		c.Pipeline.ImageTimeoutSeconds = 3
	}
	if c.Pipeline.RequestTimeoutSeconds == 0 {
		c.Pipeline.RequestTimeoutSeconds = 30
	}
}

func f32(v float32) *float32 { return &v }
