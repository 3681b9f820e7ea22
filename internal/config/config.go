package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `yaml:"port"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Yahoo struct {
	Endpoint  string            `yaml:"endpoint"`
	Modules   []string          `yaml:"modules"`
	UserAgent string            `yaml:"user_agent"`
	SymbolMap map[string]string `yaml:"symbol_map"`
}

type Quotes struct {
	// MaxSymbols caps a single batch request; 0 disables the cap.
	MaxSymbols     int `yaml:"max_symbols"`
	MaxConcurrency int `yaml:"max_concurrency"`
}

type Config struct {
	Server Server `yaml:"server"`
	// Provider selects the upstream adapter: "yahoo" or "static".
	Provider string `yaml:"provider"`
	Yahoo    Yahoo  `yaml:"yahoo"`
	Quotes   Quotes `yaml:"quotes"`
}

func Default() Config {
	return Config{
		Server:   Server{Port: "8000", RequestTimeoutSec: 10},
		Provider: "yahoo",
		Yahoo: Yahoo{
			Endpoint:  "https://query1.finance.yahoo.com/v10/finance/quoteSummary",
			Modules:   []string{"price", "financialData", "assetProfile"},
			UserAgent: "stock-game/1.0",
		},
		Quotes: Quotes{MaxSymbols: 50, MaxConcurrency: 8},
	}
}

// Load reads YAML config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("YAHOO_ENDPOINT"); v != "" {
		cfg.Yahoo.Endpoint = v
	}
	if v := os.Getenv("YAHOO_MODULES"); v != "" {
		cfg.Yahoo.Modules = splitCSV(v)
	}
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" {
		cfg.Yahoo.UserAgent = v
	}
	if v := os.Getenv("QUOTES_MAX_SYMBOLS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Quotes.MaxSymbols = x
		}
	}
	if v := os.Getenv("QUOTES_MAX_CONCURRENCY"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Quotes.MaxConcurrency = x
		}
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
