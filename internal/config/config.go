package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = ".vibecop.yaml"

type Config struct {
	// Repo no formato owner/nome; se vazio, usa GITHUB_REPOSITORY.
	Repo string `yaml:"repo"`

	MergeStrategy string `yaml:"merge_strategy"` // same-linter | same-rule-and-title | none

	SeverityThreshold   string `yaml:"severity_threshold"`
	ConfidenceThreshold string `yaml:"confidence_threshold"`
	MaxNewPerRun        int    `yaml:"max_new_per_run"`
	CloseResolved       bool   `yaml:"close_resolved"`
	MissTolerance       int    `yaml:"miss_tolerance"`
	ReopenClosed        bool   `yaml:"reopen_closed"`

	PaceMs int `yaml:"pace_ms"` // pausa entre chamadas ao tracker

	// Tools liga/desliga ferramentas pela chave de config. Ausente = ligada.
	Tools map[string]bool `yaml:"tools"`
}

func defaults() *Config {
	return &Config{
		MergeStrategy:       "same-linter",
		SeverityThreshold:   "low",
		ConfidenceThreshold: "low",
		MaxNewPerRun:        10,
		MissTolerance:       2,
		PaceMs:              500,
		Tools:               map[string]bool{},
	}
}

// Load lê o arquivo de config; ausência do arquivo devolve os defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", path, err)
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]bool{}
	}
	return cfg, nil
}

// ToolEnabled responde se a ferramenta está habilitada (default: sim).
func (c *Config) ToolEnabled(configKey string) bool {
	enabled, ok := c.Tools[configKey]
	if !ok {
		return true
	}
	return enabled
}

// RepoParts separa owner e nome. Cai para GITHUB_REPOSITORY (ambiente de
// Actions) quando a config não define.
func (c *Config) RepoParts() (owner, name string, err error) {
	repo := c.Repo
	if repo == "" {
		repo = os.Getenv("GITHUB_REPOSITORY")
	}
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repo inválido %q (esperado owner/nome)", repo)
	}
	return parts[0], parts[1], nil
}

// Token carrega GITHUB_TOKEN, com .env opcional para execução local.
func Token() string {
	_ = godotenv.Load()
	return os.Getenv("GITHUB_TOKEN")
}
