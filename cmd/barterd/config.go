package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/barter/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the node settings. Values are taken from the command line
// flags, then BARTER_ prefixed environment variables, then the optional
// config.toml file in the home directory.
type Config struct {
	Home        string `mapstructure:"home"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
	Bind        string `mapstructure:"bind"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

const envPrefix = "BARTER"

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".barter")
}

// LoadConfig merges the given flag set with the environment and the config
// file found in the home directory.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("home", defaultHome())
	v.SetDefault("log_level", "info")
	v.SetDefault("bind", "tcp://localhost:26658")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	confPath := filepath.Join(v.GetString("home"), "config.toml")
	if _, err := os.Stat(confPath); err == nil {
		v.SetConfigFile(confPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "config file %s: %s", confPath, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config: %s", err)
	}
	return &conf, nil
}

// NewLogger returns a tendermint logger writing to stdout, or to a rotated
// file if LogFile is set, filtered to LogLevel.
func (c *Config) NewLogger(stdout io.Writer) (log.Logger, error) {
	w := stdout
	if c.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			Compress:   true,
		}
	}
	allow, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allow).With("module", "barter"), nil
}
