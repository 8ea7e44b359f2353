// Package config loads the atomupd-core server configuration: the image
// pool root, the product/release/arch/variant/branch allow-lists, and the
// Static Exporter's options. Grounded on
// blackwell-systems-shelfctl/internal/config/config.go's viper + YAML
// pattern.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	PoolDir string `mapstructure:"pool_dir" yaml:"pool_dir"`

	Products []string `mapstructure:"products" yaml:"products"`
	Releases []string `mapstructure:"releases" yaml:"releases"` // must be pre-sorted
	Variants []string `mapstructure:"variants" yaml:"variants"`
	Branches []string `mapstructure:"branches" yaml:"branches"`
	Archs    []string `mapstructure:"archs" yaml:"archs"`

	EnableLegacyPaths  bool `mapstructure:"enable_legacy_paths" yaml:"enable_legacy_paths"`
	EnableMajorUpdates bool `mapstructure:"enable_major_updates" yaml:"enable_major_updates"`

	ExportDir  string `mapstructure:"export_dir" yaml:"export_dir"`
	RemoteInfo bool   `mapstructure:"remote_info" yaml:"remote_info"`

	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

// Load reads configuration from path (YAML), with ATOMUPD_*
// environment overrides, and applies the server's defaults for anything
// unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("enable_legacy_paths", false)
	v.SetDefault("enable_major_updates", false)
	v.SetDefault("remote_info", true)
	v.SetDefault("watch_debounce", 2*time.Second)

	v.SetEnvPrefix("ATOMUPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every mandatory allow-list is non-empty and that Releases
// is already sorted ascending, mirroring imagepool.py:validate_config. It
// collects every problem before returning, so an operator fixes every
// mistake in one pass instead of one at a time.
func (c *Config) Validate() error {
	var problems []string

	if c.PoolDir == "" {
		problems = append(problems, "pool_dir must be set")
	}
	for _, field := range []struct {
		name string
		list []string
	}{
		{"products", c.Products},
		{"releases", c.Releases},
		{"variants", c.Variants},
		{"archs", c.Archs},
	} {
		if len(field.list) == 0 {
			problems = append(problems, fmt.Sprintf("%s allow-list must not be empty", field.name))
		}
	}
	if !sortedAscending(c.Releases) {
		problems = append(problems, "releases allow-list must be sorted ascending")
	}
	if c.RemoteInfo && c.ExportDir == "" {
		problems = append(problems, "export_dir must be set when remote_info is enabled")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func sortedAscending(list []string) bool {
	for i := 1; i < len(list); i++ {
		if list[i-1] > list[i] {
			return false
		}
	}
	return true
}

// DefaultPath returns the path atomupdctl looks for its config at if
// -config isn't given.
func DefaultPath() string {
	if p := os.Getenv("ATOMUPD_CONFIG"); p != "" {
		return p
	}
	return "/etc/atomupd/config.yaml"
}
