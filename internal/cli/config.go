package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ringforge/ringforge/pkg/pipeline"
)

// Config holds settings read from ringforge.toml. Every value acts as a
// default and is overridden by the corresponding command-line flag.
type Config struct {
	// Board defaults
	DiameterMM       float64 `toml:"diameter_mm"`
	CenterDiameterMM float64 `toml:"center_diameter_mm"`
	PaddingMM        float64 `toml:"padding_mm"`
	Policy           string  `toml:"policy"`

	// Paths
	CacheDir  string `toml:"cache_dir"`
	BoardsDir string `toml:"boards_dir"`

	// Backends
	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig selects a shared Redis artifact cache instead of the
// default file cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig selects a MongoDB plan store instead of the default
// file store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LoadConfig reads the first config file found: ./ringforge.toml, then
// ~/.config/ringforge/config.toml. A missing or unreadable file yields the
// zero config; a malformed file is also ignored rather than blocking the
// CLI, since every setting has a flag equivalent.
func LoadConfig() Config {
	var cfg Config
	for _, path := range configPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			continue
		}
		return cfg
	}
	return cfg
}

func configPaths() []string {
	paths := []string{"ringforge.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}
	return paths
}

// applyBoardDefaults copies config file board settings into options that
// were not set on the command line.
func (c *CLI) applyBoardDefaults(opts *pipeline.Options) {
	if opts.DiameterMM == 0 {
		opts.DiameterMM = c.Config.DiameterMM
	}
	if opts.CenterDiameterMM == 0 {
		opts.CenterDiameterMM = c.Config.CenterDiameterMM
	}
	if opts.PaddingMM == 0 {
		opts.PaddingMM = c.Config.PaddingMM
	}
	if opts.Policy == "" {
		opts.Policy = c.Config.Policy
	}
}
