package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"macro-parity/internal/backtest"
	"macro-parity/internal/catalog"
	"macro-parity/internal/logger"
	"macro-parity/internal/model"
	"macro-parity/internal/strategy"

	"gopkg.in/yaml.v3"
)

const (
	SourceAlphaVantage = "alphavantage"
	SourceFile         = "file"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load asset classes from a separate YAML (see catalog.Load).
	// Entries in Catalog are overlaid by name onto the file, or onto the
	// built-in catalog when no file is given.
	CatalogFile string             `yaml:"catalog_file"`
	Catalog     []model.AssetClass `yaml:"catalog"`

	Strategy StrategyConfig `yaml:"strategy"`
	Backtest BacktestConfig `yaml:"backtest"`
	Data     DataConfig     `yaml:"data"`
	Log      logger.Config  `yaml:"log"`
}

type StrategyConfig struct {
	Name string `yaml:"name"`
}

type BacktestConfig struct {
	Start string `yaml:"start"` // YYYY-MM-DD
	End   string `yaml:"end"`
}

type DataConfig struct {
	Source  string `yaml:"source"` // alphavantage | file
	Path    string `yaml:"path"`   // indicators JSON when source is file
	BaseURL string `yaml:"base_url"`

	Cache     string        `yaml:"cache"` // memory | redis | none
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	RedisAddr string        `yaml:"redis_addr"`

	RequestsPerMinute int `yaml:"requests_per_minute"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config and resolves its catalog, but does not
// apply defaults or validate.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	base := catalog.Default()
	if c.CatalogFile != "" {
		loaded, err := catalog.Load(resolvePath(path, c.CatalogFile))
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	c.Catalog = catalog.Merge(base, c.Catalog)

	if c.Data.Path != "" {
		c.Data.Path = resolvePath(path, c.Data.Path)
	}
	return &c, nil
}

// resolvePath interprets rel relative to the config file directory when that
// file exists, falling back to the path as given (relative to cwd).
func resolvePath(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	cand := filepath.Join(filepath.Dir(configPath), rel)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return rel
}

func (c *Config) ApplyDefaults() {
	if len(c.Catalog) == 0 {
		c.Catalog = catalog.Default()
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = strategy.NameMacroTilt
	}
	def := backtest.DefaultWindow()
	if c.Backtest.Start == "" {
		c.Backtest.Start = def.Start.Format("2006-01-02")
	}
	if c.Backtest.End == "" {
		c.Backtest.End = def.End.Format("2006-01-02")
	}
	if c.Data.Source == "" {
		c.Data.Source = SourceAlphaVantage
	}
	if c.Data.Cache == "" {
		c.Data.Cache = CacheMemory
	}
	if c.Data.CacheTTL == 0 {
		c.Data.CacheTTL = time.Hour
	}
	if c.Data.RedisAddr == "" {
		c.Data.RedisAddr = "localhost:6379"
	}
	if c.Data.RequestsPerMinute == 0 {
		c.Data.RequestsPerMinute = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := catalog.Validate(c.Catalog); err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}
	if _, err := strategy.Build(c.Strategy.Name, c.Catalog); err != nil {
		return fmt.Errorf("strategy invalid: %w", err)
	}
	if _, err := c.Window(); err != nil {
		return err
	}
	switch c.Data.Source {
	case SourceAlphaVantage:
	case SourceFile:
		if c.Data.Path == "" {
			return errors.New("data.path is required when data.source is file")
		}
	default:
		return fmt.Errorf("unsupported data.source: %q", c.Data.Source)
	}
	switch c.Data.Cache {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unsupported data.cache: %q", c.Data.Cache)
	}
	if c.Data.CacheTTL < 0 {
		return errors.New("data.cache_ttl must be non-negative")
	}
	if c.Data.RequestsPerMinute < 0 {
		return errors.New("data.requests_per_minute must be non-negative")
	}
	return nil
}

// Window returns the validated backtest window.
func (c *Config) Window() (backtest.Window, error) {
	w, err := backtest.ParseWindow(strings.TrimSpace(c.Backtest.Start), strings.TrimSpace(c.Backtest.End))
	if err != nil {
		return backtest.Window{}, err
	}
	if err := w.Validate(); err != nil {
		return backtest.Window{}, err
	}
	return w, nil
}
