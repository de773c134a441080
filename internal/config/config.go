package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config drives the analyze command.
type Config struct {
	LogLevel       string
	Format         string
	StrictReserved bool
	Serial         Serial
}

// Serial describes a receiver port to capture from.
type Serial struct {
	Device      string
	Baud        int
	ReadBytes   int
	ReadTimeout time.Duration
}

type fileConfig struct {
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
	Decode struct {
		StrictReserved bool `toml:"strict_reserved"`
	} `toml:"decode"`
	Serial struct {
		Device      string `toml:"device"`
		Baud        int    `toml:"baud"`
		ReadBytes   int    `toml:"read_bytes"`
		ReadTimeout string `toml:"read_timeout"`
	} `toml:"serial"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatText,
		Serial: Serial{
			Baud:        115200,
			ReadBytes:   64 * 1024,
			ReadTimeout: 5 * time.Second,
		},
	}
}

// Load reads a TOML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("output", "format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
	}
	if meta.IsDefined("decode", "strict_reserved") {
		cfg.StrictReserved = raw.Decode.StrictReserved
	}
	if meta.IsDefined("serial", "device") {
		cfg.Serial.Device = strings.TrimSpace(raw.Serial.Device)
	}
	if meta.IsDefined("serial", "baud") {
		cfg.Serial.Baud = raw.Serial.Baud
	}
	if meta.IsDefined("serial", "read_bytes") {
		cfg.Serial.ReadBytes = raw.Serial.ReadBytes
	}
	if meta.IsDefined("serial", "read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Serial.ReadTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse serial.read_timeout: %w", err)
		}
		cfg.Serial.ReadTimeout = d
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid output format %q (want %s or %s)", c.Format, FormatText, FormatJSON)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial baud must be positive, got %d", c.Serial.Baud)
	}
	if c.Serial.ReadBytes <= 0 {
		return fmt.Errorf("serial read_bytes must be positive, got %d", c.Serial.ReadBytes)
	}
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("serial read_timeout must be positive, got %s", c.Serial.ReadTimeout)
	}
	return nil
}
