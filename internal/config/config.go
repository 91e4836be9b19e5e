// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPaths []string `toml:"scan_paths"`
	Exclude   Exclude  `toml:"exclude"`
	Watch     Watch    `toml:"watch"`
	Output    Output   `toml:"output"`
	History   History  `toml:"history"`
	Tracing   Tracing  `toml:"tracing"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Rescans per second allowed once debounced batches arrive.
	RescanRate  float64 `toml:"rescan_rate"`
	RescanBurst int     `toml:"rescan_burst"`
}

type Output struct {
	TSV     string `toml:"tsv"`
	DOT     string `toml:"dot"`
	Mermaid string `toml:"mermaid"`
}

type History struct {
	Path string `toml:"path"` // sqlite file; history disabled when empty
}

type Tracing struct {
	Endpoint string `toml:"endpoint"` // OTLP gRPC endpoint; tracing disabled when empty
}

// Default returns the configuration used when no config file is present:
// scan the current directory, exclude nothing, keep history and tracing off.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.ScanPaths) == 0 {
		c.ScanPaths = []string{"."}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RescanRate == 0 {
		c.Watch.RescanRate = 1
	}
	if c.Watch.RescanBurst == 0 {
		c.Watch.RescanBurst = 2
	}
}
