// Package config loads the tunable discussion parameters from YAML. Secrets
// and endpoints stay in the environment; this file is for knobs an operator
// may want to change without touching the deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Forum  ForumConfig  `yaml:"forum"`
	Server ServerConfig `yaml:"server"`
}

type ForumConfig struct {
	MaxRounds          int `yaml:"max_rounds"`
	StepTimeoutSeconds int `yaml:"step_timeout_seconds"`
	RAGTopK            int `yaml:"rag_top_k"`
	WebMaxResults      int `yaml:"web_max_results"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// StepTimeout is the per-step deadline of the discussion loop.
func (c ForumConfig) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Forum.MaxRounds == 0 {
		c.Forum.MaxRounds = 3
	}
	if c.Forum.StepTimeoutSeconds == 0 {
		c.Forum.StepTimeoutSeconds = 120
	}
	if c.Forum.RAGTopK == 0 {
		c.Forum.RAGTopK = 3
	}
	if c.Forum.WebMaxResults == 0 {
		c.Forum.WebMaxResults = 5
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

func (c *Config) Validate() error {
	if c.Forum.MaxRounds < 1 {
		return fmt.Errorf("forum.max_rounds must be at least 1, got %d", c.Forum.MaxRounds)
	}
	if c.Forum.StepTimeoutSeconds < 1 {
		return fmt.Errorf("forum.step_timeout_seconds must be positive, got %d", c.Forum.StepTimeoutSeconds)
	}
	if c.Forum.RAGTopK < 1 {
		return fmt.Errorf("forum.rag_top_k must be positive, got %d", c.Forum.RAGTopK)
	}
	if c.Forum.WebMaxResults < 1 {
		return fmt.Errorf("forum.web_max_results must be positive, got %d", c.Forum.WebMaxResults)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", c.Server.Port)
	}
	return nil
}
