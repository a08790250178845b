package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigPath = "PNGME_CONFIG"

// Config represents the pngme configuration file (~/.config/pngme/config.yaml).
// Values only apply when the matching flag was not set on the command line.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Lenient   *bool  `yaml:"lenient"`

	// encode defaults
	Message string `yaml:"message"`
	OutFile string `yaml:"out_file"`

	// serve defaults
	ServerAddress string `yaml:"server_address"`
	MaxUpload     *int64 `yaml:"max_upload"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pngme", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func applyGlobalConfig(c *cli.Command, cfg Config, o *globalOptions) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		o.logFormat = cfg.LogFormat
	}
	if cfg.Lenient != nil && !c.IsSet("lenient") {
		o.lenient = *cfg.Lenient
	}
}

// applyEncodeConfig applies config file defaults to encode command variables.
func applyEncodeConfig(c *cli.Command, cfg Config, message, outFile *string) {
	if cfg.Message != "" && !c.IsSet("message") {
		*message = cfg.Message
	}
	if cfg.OutFile != "" && !c.IsSet("out") {
		*outFile = cfg.OutFile
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUpload != nil && !c.IsSet("max-upload") {
		*maxUpload = *cfg.MaxUpload
	}
}
