package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/idilsaglam/ticketboard/internal/model"
)

// DefaultEndpoint is the public ticket feed the board reads by default.
const DefaultEndpoint = "https://api.quicksell.co/v1/internal/frontend-assignment"

// Config holds all application configuration
type Config struct {
	Source SourceConfig `toml:"source"`
	Board  BoardConfig  `toml:"board"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// SourceConfig selects where tickets come from
type SourceConfig struct {
	Endpoint string   `toml:"endpoint"`
	File     string   `toml:"file"`
	Timeout  Duration `toml:"timeout"`
	Watch    bool     `toml:"watch"`
	Debounce Duration `toml:"debounce"`
}

// BoardConfig holds the initial selection controls
type BoardConfig struct {
	GroupBy string `toml:"group_by"`
	SortBy  string `toml:"sort_by"`
}

// UIConfig holds rendering settings
type UIConfig struct {
	Theme       string `toml:"theme"`
	ColumnWidth int    `toml:"column_width"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig holds the JSON API settings
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as "10s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  Duration{10 * time.Second},
			Debounce: Duration{250 * time.Millisecond},
		},
		Board: BoardConfig{
			GroupBy: string(model.GroupByStatus),
			SortBy:  string(model.SortByPriority),
		},
		UI: UIConfig{
			Theme:       "classic",
			ColumnWidth: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Expand paths
	cfg.Source.File = ExpandPath(cfg.Source.File)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return cfg, nil
}

var themes = []string{"classic", "neon", "mono"}

// Validate checks values a TOML file or flag may have set wrongly.
func (c *Config) Validate() error {
	var errs []error
	if _, err := model.ParseGroupField(c.Board.GroupBy); err != nil {
		errs = append(errs, err)
	}
	if _, err := model.ParseSortField(c.Board.SortBy); err != nil {
		errs = append(errs, err)
	}
	if c.Source.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("source timeout must be positive, got %s", c.Source.Timeout))
	}
	if c.Source.Debounce.Duration <= 0 {
		errs = append(errs, fmt.Errorf("source debounce must be positive, got %s", c.Source.Debounce))
	}
	if c.Source.File == "" && strings.TrimSpace(c.Source.Endpoint) == "" {
		errs = append(errs, errors.New("either source endpoint or source file must be set"))
	}
	if !isTheme(c.UI.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.UI.Theme))
	}
	if c.UI.ColumnWidth < 16 {
		errs = append(errs, fmt.Errorf("column width must be at least 16, got %d", c.UI.ColumnWidth))
	}
	return errors.Join(errs...)
}

func isTheme(name string) bool {
	for _, t := range themes {
		if strings.EqualFold(name, t) {
			return true
		}
	}
	return false
}

// GroupBy returns the validated grouping field.
func (c *Config) GroupBy() model.GroupField {
	f, err := model.ParseGroupField(c.Board.GroupBy)
	if err != nil {
		return model.GroupByStatus
	}
	return f
}

// SortBy returns the validated sort field.
func (c *Config) SortBy() model.SortField {
	f, err := model.ParseSortField(c.Board.SortBy)
	if err != nil {
		return model.SortByPriority
	}
	return f
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ticketboard", "config.toml")
}
