package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

// Engine names accepted in configuration.
const (
	EngineBPTree     = "bptree"
	EngineLinearHash = "linearhash"
)

// Config selects the engine and its byte budgets. PageSize feeds the B+ tree,
// TotalBytes the hash table; each engine reads only its own budget.
type Config struct {
	Engine    string `mapstructure:"engine"`
	NumFields int    `mapstructure:"num_fields"`

	BPTree struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"bptree"`

	LinearHash struct {
		TotalBytes int `mapstructure:"total_bytes"`
	} `mapstructure:"linearhash"`
}

// DefaultConfig mirrors the interactive defaults: three int fields, a 64-byte
// page for the tree and a 128-byte budget for the hash table.
func DefaultConfig() Config {
	cfg := Config{
		Engine:    EngineBPTree,
		NumFields: 3,
	}
	cfg.BPTree.PageSize = 64
	cfg.LinearHash.TotalBytes = 128
	return cfg
}

// LoadConfig reads a YAML config file, filling unset fields from the
// defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := DefaultConfig()
	v.SetDefault("engine", def.Engine)
	v.SetDefault("num_fields", def.NumFields)
	v.SetDefault("bptree.page_size", def.BPTree.PageSize)
	v.SetDefault("linearhash.total_bytes", def.LinearHash.TotalBytes)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations no engine can be built from.
func (c *Config) Validate() error {
	if c.Engine != EngineBPTree && c.Engine != EngineLinearHash {
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	if c.NumFields < 1 {
		return fmt.Errorf("config: num_fields must be >= 1, got %d", c.NumFields)
	}
	if c.Engine == EngineBPTree && c.BPTree.PageSize < 1 {
		return fmt.Errorf("config: bptree.page_size must be >= 1, got %d", c.BPTree.PageSize)
	}
	if c.Engine == EngineLinearHash && c.LinearHash.TotalBytes < 1 {
		return fmt.Errorf("config: linearhash.total_bytes must be >= 1, got %d", c.LinearHash.TotalBytes)
	}
	return nil
}
