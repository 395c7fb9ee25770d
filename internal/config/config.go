package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/dataset"
)

// Global configuration structure. The classification ratios are
// empirical constants kept here so they can be tuned without touching
// the profiler.
type Global struct {
	NumericRatio   float64 `mapstructure:"numeric_ratio" yaml:"numeric_ratio"`
	DateRatio      float64 `mapstructure:"date_ratio" yaml:"date_ratio"`
	SampleLimit    int     `mapstructure:"sample_limit" yaml:"sample_limit"`
	FrequencyLimit int     `mapstructure:"frequency_limit" yaml:"frequency_limit"`
	RecentImports  int     `mapstructure:"recent_imports" yaml:"recent_imports"`
	SampleRows     int     `mapstructure:"sample_rows" yaml:"sample_rows"`

	// Column vocabularies by concern: region, variety, process,
	// quality, volume, value, date.
	ColumnKeywords map[string][]string `mapstructure:"column_keywords" yaml:"column_keywords"`
}

// ProfilerOptions maps the configuration onto profiling options.
func (c *Global) ProfilerOptions() dataset.Options {
	opt := dataset.DefaultOptions()
	if c.NumericRatio > 0 {
		opt.NumericRatio = c.NumericRatio
	}
	if c.DateRatio > 0 {
		opt.DateRatio = c.DateRatio
	}
	if c.SampleLimit > 0 {
		opt.SampleLimit = c.SampleLimit
	}
	return opt
}

// DashboardOptions maps the configuration onto dashboard composition
// options, overlaying any configured vocabularies onto the defaults.
func (c *Global) DashboardOptions() analytics.DashboardOptions {
	opt := analytics.DefaultDashboardOptions()
	if c.FrequencyLimit > 0 {
		opt.FrequencyLimit = c.FrequencyLimit
	}
	if c.RecentImports > 0 {
		opt.RecentImports = c.RecentImports
	}
	if c.SampleRows > 0 {
		opt.SampleRows = c.SampleRows
	}
	if words, ok := c.ColumnKeywords["region"]; ok {
		opt.Keywords.Region = words
	}
	if words, ok := c.ColumnKeywords["variety"]; ok {
		opt.Keywords.Variety = words
	}
	if words, ok := c.ColumnKeywords["process"]; ok {
		opt.Keywords.Process = words
	}
	if words, ok := c.ColumnKeywords["quality"]; ok {
		opt.Keywords.Quality = words
	}
	if words, ok := c.ColumnKeywords["volume"]; ok {
		opt.Keywords.Volume = words
	}
	if words, ok := c.ColumnKeywords["value"]; ok {
		opt.Keywords.Value = words
	}
	if words, ok := c.ColumnKeywords["date"]; ok {
		opt.Keywords.Date = words
	}
	return opt
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cropsight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".cropsight")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CROPSIGHT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("numeric_ratio", 0.45)
	v.SetDefault("date_ratio", 0.35)
	v.SetDefault("sample_limit", 8)
	v.SetDefault("frequency_limit", 6)
	v.SetDefault("recent_imports", 5)
	v.SetDefault("sample_rows", 10)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".cropsight")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
