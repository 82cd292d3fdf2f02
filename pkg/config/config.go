// Package config loads backoffice settings from defaults, an optional YAML
// file, an optional .env file and BACKOFFICE_* environment variables, in
// that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-backoffice/components/tableview"
	"github.com/goliatone/go-backoffice/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BACKOFFICE_"

// Config is the full backoffice configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Tables    TablesConfig    `yaml:"tables"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       logging.Config  `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// MaxSessions caps live API sessions; the least recently used is evicted.
	MaxSessions int           `yaml:"max_sessions"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
}

// DataConfig sizes the generated dataset. Seed 0 seeds from the clock.
type DataConfig struct {
	Seed     uint64 `yaml:"seed"`
	Orders   int    `yaml:"orders"`
	Sellers  int    `yaml:"sellers"`
	Team     int    `yaml:"team"`
	Sessions int    `yaml:"sessions"`
}

// TablesConfig holds table view defaults.
type TablesConfig struct {
	PageSize       int           `yaml:"page_size"`
	FilterDebounce time.Duration `yaml:"filter_debounce"`
}

// DashboardConfig points at the layout file and chart look.
type DashboardConfig struct {
	LayoutPath  string `yaml:"layout_path"`
	ChartTheme  string `yaml:"chart_theme"`
	ChartHeight string `yaml:"chart_height"`
	AssetsHost  string `yaml:"assets_host"`
}

var chartThemes = []string{
	types.ThemeChalk, types.ThemeMacarons, types.ThemeWalden, types.ThemeWesteros, types.ThemeWonderland,
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
			MaxSessions:     1024,
			SessionTTL:      30 * time.Minute,
		},
		Data:   DataConfig{Seed: 1, Orders: 120, Sellers: 12, Team: 8, Sessions: 30},
		Tables: TablesConfig{
			PageSize:       tableview.DefaultPageSize,
			FilterDebounce: tableview.DefaultFilterDebounce,
		},
		Dashboard: DashboardConfig{ChartTheme: types.ThemeWesteros, ChartHeight: "320px"},
		Log:       logging.Default(),
	}
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is a YAML file; empty falls back to BACKOFFICE_CONFIG.
	Path string
	// EnvFile is a dotenv file. A missing file is not an error.
	EnvFile string
	// Lookup reads the process environment; defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds a validated configuration.
func Load(opts LoadOptions) (*Config, error) {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.EnvFile != "" {
		fileEnv, err := godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read env file %s: %w", opts.EnvFile, err)
		}
		lookup = layered(lookup, fileEnv)
	}
	cfg := Default()
	path := opts.Path
	if path == "" {
		path, _ = lookup(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// layered prefers real environment values over dotenv values.
func layered(primary func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	str("ADDR", &c.Server.Addr)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	num("MAX_SESSIONS", &c.Server.MaxSessions)
	dur("SESSION_TTL", &c.Server.SessionTTL)
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSEED: %w", EnvPrefix, err))
		} else {
			c.Data.Seed = seed
		}
	}
	num("ORDERS", &c.Data.Orders)
	num("SELLERS", &c.Data.Sellers)
	num("TEAM", &c.Data.Team)
	num("SESSIONS", &c.Data.Sessions)
	num("PAGE_SIZE", &c.Tables.PageSize)
	dur("FILTER_DEBOUNCE", &c.Tables.FilterDebounce)
	str("LAYOUT", &c.Dashboard.LayoutPath)
	str("CHART_THEME", &c.Dashboard.ChartTheme)
	str("CHART_HEIGHT", &c.Dashboard.ChartHeight)
	str("ASSETS_HOST", &c.Dashboard.AssetsHost)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LOG_FILE", &c.Log.Filename)
	return errors.Join(errs...)
}

// Validate collects every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server.addr is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("config: server.shutdown_timeout cannot be negative"))
	}
	if c.Server.MaxSessions < 1 {
		errs = append(errs, errors.New("config: server.max_sessions must be at least 1"))
	}
	if c.Server.SessionTTL < 0 {
		errs = append(errs, errors.New("config: server.session_ttl cannot be negative"))
	}
	for name, n := range map[string]int{
		"orders": c.Data.Orders, "sellers": c.Data.Sellers,
		"team": c.Data.Team, "sessions": c.Data.Sessions,
	} {
		if n < 0 {
			errs = append(errs, fmt.Errorf("config: data.%s cannot be negative", name))
		}
	}
	if !slices.Contains(tableview.PageSizeOptions, c.Tables.PageSize) {
		errs = append(errs, fmt.Errorf("config: tables.page_size %d must be one of %v", c.Tables.PageSize, tableview.PageSizeOptions))
	}
	if c.Tables.FilterDebounce < 0 {
		errs = append(errs, errors.New("config: tables.filter_debounce cannot be negative"))
	}
	if c.Dashboard.ChartTheme != "" && !slices.Contains(chartThemes, c.Dashboard.ChartTheme) {
		errs = append(errs, fmt.Errorf("config: unknown chart theme %q", c.Dashboard.ChartTheme))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
