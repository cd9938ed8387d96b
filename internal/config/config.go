package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Dataset columns
	PersonCol  string   `mapstructure:"person_col" yaml:"person_col"`
	AltCol     string   `mapstructure:"alt_col" yaml:"alt_col"`
	TimeCol    string   `mapstructure:"time_col" yaml:"time_col"`
	CostCol    string   `mapstructure:"cost_col" yaml:"cost_col"`
	PersonVars []string `mapstructure:"person_vars" yaml:"person_vars"`
	GroupCol   string   `mapstructure:"group_col" yaml:"group_col"`

	// Reading
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	Decimal   string `mapstructure:"decimal" yaml:"decimal"`

	// Computation policy
	RequireTime    bool   `mapstructure:"require_time" yaml:"require_time"`
	Degenerate     string `mapstructure:"degenerate" yaml:"degenerate"`
	RelabelBoolean bool   `mapstructure:"relabel_boolean" yaml:"relabel_boolean"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	SQLitePath   string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultPath returns ~/.logsum/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".logsum", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.logsum/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
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
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LOGSUM")
	v.AutomaticEnv()

	v.SetDefault("person_col", "sampno")
	v.SetDefault("alt_col", "mode_four_kinds")
	v.SetDefault("time_col", "travel_time")
	v.SetDefault("cost_col", "travel_cost")
	v.SetDefault("person_vars", []string{"age", "male", "numvec", "hhinc"})
	v.SetDefault("group_col", "work")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal", "")
	v.SetDefault("require_time", true)
	v.SetDefault("degenerate", "propagate")
	v.SetDefault("relabel_boolean", true)
	v.SetDefault("output_format", "markdown")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// The file is optional; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
