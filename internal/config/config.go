package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nixlim/fuel-top/internal/analytics"
)

type Config struct {
	API       APIConfig       `toml:"api"`
	Display   DisplayConfig   `toml:"display"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Export    ExportConfig    `toml:"export"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type DisplayConfig struct {
	RecentLimit     int    `toml:"recent_limit"`
	ToastSeconds    int    `toml:"toast_seconds"`
	ToastBufferSize int    `toml:"toast_buffer_size"`
	StartView       string `toml:"start_view"`
}

type AnalyticsConfig struct {
	Enabled       bool   `toml:"enabled"`
	DefaultPeriod string `toml:"default_period"`
	StaticCharts  bool   `toml:"static_charts"`
}

type ExportConfig struct {
	PageTitle string `toml:"page_title"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

// Views accepted by display.start_view.
var StartViews = []string{"dashboard", "analytics", "fuel_log", "trip"}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Display: DisplayConfig{
			RecentLimit:     3,
			ToastSeconds:    3,
			ToastBufferSize: 50,
			StartView:       "dashboard",
		},
		Analytics: AnalyticsConfig{
			Enabled:       true,
			DefaultPeriod: string(analytics.Period30Days),
			StaticCharts:  true,
		},
		Export: ExportConfig{
			PageTitle: "Fuel Tracker Analytics",
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fuel-top", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

func LoadFrom(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	result, err := decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func LoadFromString(data string) (*LoadResult, error) {
	if data == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	result, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

var knownTopLevel = map[string]bool{
	"api":       true,
	"display":   true,
	"analytics": true,
	"export":    true,
}

type tomlFile struct {
	API       *APIConfig       `toml:"api"`
	Display   *DisplayConfig   `toml:"display"`
	Analytics *AnalyticsConfig `toml:"analytics"`
	Export    *ExportConfig    `toml:"export"`
}

func decode(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, err
	}
	for key := range raw {
		if !knownTopLevel[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
		}
	}

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, err
	}

	mergeFromRaw(&result.Config, &tf, raw)
	return result, nil
}

// mergeFromRaw copies only keys present in the file so absent keys keep
// their defaults.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.API != nil {
		if section, ok := rawSection(raw, "api"); ok {
			if _, exists := section["base_url"]; exists {
				cfg.API.BaseURL = tf.API.BaseURL
			}
		}
	}
	if tf.Display != nil {
		if section, ok := rawSection(raw, "display"); ok {
			if _, exists := section["recent_limit"]; exists {
				cfg.Display.RecentLimit = tf.Display.RecentLimit
			}
			if _, exists := section["toast_seconds"]; exists {
				cfg.Display.ToastSeconds = tf.Display.ToastSeconds
			}
			if _, exists := section["toast_buffer_size"]; exists {
				cfg.Display.ToastBufferSize = tf.Display.ToastBufferSize
			}
			if _, exists := section["start_view"]; exists {
				cfg.Display.StartView = tf.Display.StartView
			}
		}
	}
	if tf.Analytics != nil {
		if section, ok := rawSection(raw, "analytics"); ok {
			if _, exists := section["enabled"]; exists {
				cfg.Analytics.Enabled = tf.Analytics.Enabled
			}
			if _, exists := section["default_period"]; exists {
				cfg.Analytics.DefaultPeriod = tf.Analytics.DefaultPeriod
			}
			if _, exists := section["static_charts"]; exists {
				cfg.Analytics.StaticCharts = tf.Analytics.StaticCharts
			}
		}
	}
	if tf.Export != nil {
		if section, ok := rawSection(raw, "export"); ok {
			if _, exists := section["page_title"]; exists {
				cfg.Export.PageTitle = tf.Export.PageTitle
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Validate checks cfg the same way loading does, for values changed after
// load such as command-line overrides.
func Validate(cfg Config) error {
	return validate(&cfg)
}

func validate(cfg *Config) error {
	var errs []string

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Sprintf("api base_url must be an absolute http(s) URL, got %q", cfg.API.BaseURL))
	}

	if cfg.Display.RecentLimit < 1 || cfg.Display.RecentLimit > 100 {
		errs = append(errs, fmt.Sprintf("recent_limit must be 1-100, got %d", cfg.Display.RecentLimit))
	}
	if cfg.Display.ToastSeconds < 1 {
		errs = append(errs, fmt.Sprintf("toast_seconds must be positive, got %d", cfg.Display.ToastSeconds))
	}
	if cfg.Display.ToastBufferSize < 1 {
		errs = append(errs, fmt.Sprintf("toast_buffer_size must be positive, got %d", cfg.Display.ToastBufferSize))
	}
	validView := false
	for _, v := range StartViews {
		if cfg.Display.StartView == v {
			validView = true
			break
		}
	}
	if !validView {
		errs = append(errs, fmt.Sprintf("start_view must be one of %s, got %q", strings.Join(StartViews, ", "), cfg.Display.StartView))
	}

	if _, err := analytics.ParsePeriod(cfg.Analytics.DefaultPeriod); err != nil {
		errs = append(errs, fmt.Sprintf("default_period: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
