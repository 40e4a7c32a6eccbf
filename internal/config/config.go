// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultServerURL        = "http://127.0.0.1:8000"
	DefaultHackDurationMS   = 3000
	DefaultRequestTimeoutMS = 10000
	DefaultListen           = "127.0.0.1:8000"
	DefaultWebDir           = "web"
	DefaultLogLevel         = "info"
)

type Config struct {
	ServerURL        string       `toml:"server_url"`
	HackDurationMS   int          `toml:"hack_duration_ms"`
	RequestTimeoutMS int          `toml:"request_timeout_ms"`
	Server           ServerConfig `toml:"server"`
	Log              LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
	WebDir string `toml:"web_dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ServerURL:        DefaultServerURL,
		HackDurationMS:   DefaultHackDurationMS,
		RequestTimeoutMS: DefaultRequestTimeoutMS,
		Server: ServerConfig{
			Listen: DefaultListen,
			WebDir: DefaultWebDir,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads the config file, fills unset fields with defaults and applies
// environment overrides. A missing file is not an error.
func Load() (Config, string, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := loadToml(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, path, err
		}
		cfg = Default()
	}
	cfg = withDefaults(cfg)
	applyEnv(&cfg)
	return cfg, path, nil
}

func Save(path string, cfg Config) error {
	data, err := toml.Marshal(withDefaults(cfg))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Path returns where Load and Save look for the config file.
func Path() (string, error) {
	return configPath()
}

func configPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		var err error
		configHome, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}

	return filepath.Join(configHome, "matrix", "config.toml"), nil
}

func loadToml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	// Keys missing from the file keep their default values.
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func withDefaults(cfg Config) Config {
	def := Default()
	if strings.TrimSpace(cfg.ServerURL) == "" {
		cfg.ServerURL = def.ServerURL
	}
	if cfg.HackDurationMS < 0 {
		cfg.HackDurationMS = def.HackDurationMS
	}
	if cfg.RequestTimeoutMS <= 0 {
		cfg.RequestTimeoutMS = def.RequestTimeoutMS
	}
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = def.Server.Listen
	}
	if strings.TrimSpace(cfg.Server.WebDir) == "" {
		cfg.Server.WebDir = def.Server.WebDir
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = def.Log.Level
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("MATRIX_SERVER_URL")); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv("MATRIX_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("MATRIX_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("MATRIX_WEB_DIR")); v != "" {
		cfg.Server.WebDir = v
	}
}

// HackDuration is the noise phase length. Zero plays the art right after
// the first noise line.
func (c Config) HackDuration() time.Duration {
	return time.Duration(c.HackDurationMS) * time.Millisecond
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate checks fields that cannot be defaulted.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server_url %q: missing host", c.ServerURL)
	}
	return nil
}

func RemoveConfigFiles() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
