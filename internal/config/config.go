// Package config loads mdfront's CLI defaults using Viper.
package config

import (
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file naming.
const AppName = "mdfront"

// Output formats understood by the CLI.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
	FormatTable = "table"
)

// Formats lists the valid values for Config.Format.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML, FormatTable}

// ErrInvalidFormat indicates an output format outside of Formats.
var ErrInvalidFormat = errors.New("invalid output format")

// Config holds the defaults for command flags.
type Config struct {
	Format string   `mapstructure:"format" yaml:"format"`
	Lang   []string `mapstructure:"lang" yaml:"lang"`
	Quiet  bool     `mapstructure:"quiet" yaml:"quiet"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetDefault("format", FormatJSON)
	v.SetDefault("lang", []string{"*"})
	v.SetDefault("quiet", false)

	// only the keys above come from the environment, as MDFRONT_<KEY>
	v.SetEnvPrefix("MDFRONT")

	for _, key := range []string{"format", "lang", "quiet"} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load reads the configuration. If path is empty, mdfront.yaml is looked up in
// the current directory and then in $XDG_CONFIG_HOME/mdfront; a missing file
// is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return errors.WithHintf(
			errors.Wrapf(ErrInvalidFormat, "%q", c.Format),
			"use one of: %v", Formats,
		)
	}

	return nil
}
