package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Dataset conventions. The delimiter is a fixed convention documented
	// alongside the dataset, not sniffed at runtime.
	DataFile  string `mapstructure:"data_file" yaml:"data_file"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Analysis defaults used when flags are omitted.
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
	Metric  string `mapstructure:"metric" yaml:"metric"`
	TopN    int    `mapstructure:"top_n" yaml:"top_n"`

	// Dashboard server.
	ServerPort          string `mapstructure:"server_port" yaml:"server_port"`
	ServerReadTimeoutS  int    `mapstructure:"server_read_timeout_sec" yaml:"server_read_timeout_sec"`
	ServerWriteTimeoutS int    `mapstructure:"server_write_timeout_sec" yaml:"server_write_timeout_sec"`
	ServerIdleTimeoutS  int    `mapstructure:"server_idle_timeout_sec" yaml:"server_idle_timeout_sec"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.vidlens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".vidlens")
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
	v.SetEnvPrefix("VIDLENS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("delimiter", ",")
	v.SetDefault("group_by", "category")
	v.SetDefault("metric", "views")
	v.SetDefault("top_n", 10)
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_timeout_sec", 15)
	v.SetDefault("server_write_timeout_sec", 15)
	v.SetDefault("server_idle_timeout_sec", 60)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".vidlens")
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
	if c.TopN <= 0 {
		c.TopN = 10
	}
	return &c, nil
}
