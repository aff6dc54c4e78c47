// Package config loads seagreen settings from defaults, an optional YAML
// file and SEAGREEN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/dataset"
)

// Config is the full process configuration.
type Config struct {
	Addr          string        `yaml:"addr" env:"SEAGREEN_ADDR"`
	Source        Source        `yaml:"source" envPrefix:"SEAGREEN_SOURCE_"`
	CacheSize     int           `yaml:"cacheSize" env:"SEAGREEN_CACHE_SIZE"`
	SessionTTL    time.Duration `yaml:"sessionTTL" env:"SEAGREEN_SESSION_TTL"`
	SweepInterval time.Duration `yaml:"sweepInterval" env:"SEAGREEN_SWEEP_INTERVAL"`
	TopN          int           `yaml:"topN" env:"SEAGREEN_TOP_N"`
	Language      string        `yaml:"language" env:"SEAGREEN_LANGUAGE"`
}

// Source locates the two dataset tables.
type Source struct {
	Kind          string `yaml:"kind" env:"KIND"`
	StartupsPath  string `yaml:"startupsPath" env:"STARTUPS_PATH"`
	FundingPath   string `yaml:"fundingPath" env:"FUNDING_PATH"`
	WorkbookPath  string `yaml:"workbookPath" env:"WORKBOOK_PATH"`
	DSN           string `yaml:"dsn" env:"DSN"`
	StartupsTable string `yaml:"startupsTable" env:"STARTUPS_TABLE"`
	FundingTable  string `yaml:"fundingTable" env:"FUNDING_TABLE"`
}

// Default returns the built-in settings: CSV files under data/.
func Default() Config {
	return Config{
		Addr: ":8080",
		Source: Source{
			Kind:         string(dataset.SourceCSV),
			StartupsPath: "data/startups.csv",
			FundingPath:  "data/funding.csv",
		},
		CacheSize:     dashboard.DefaultCacheSize,
		SessionTTL:    dashboard.DefaultSessionTTL,
		SweepInterval: time.Minute,
		TopN:          3,
		Language:      "en",
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load layers the YAML file at path (if non-empty) and the environment
// over Default, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	switch dataset.SourceKind(c.Source.Kind) {
	case dataset.SourceCSV:
		if c.Source.StartupsPath == "" || c.Source.FundingPath == "" {
			errs = append(errs, errors.New("csv source needs startupsPath and fundingPath"))
		}
	case dataset.SourceXLSX:
		if c.Source.WorkbookPath == "" {
			errs = append(errs, errors.New("xlsx source needs workbookPath"))
		}
	case dataset.SourceSQLite, dataset.SourcePostgres:
		if c.Source.DSN == "" {
			errs = append(errs, fmt.Errorf("%s source needs dsn", c.Source.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source kind %q", c.Source.Kind))
	}
	if c.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("cacheSize must be positive, got %d", c.CacheSize))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("sessionTTL must not be negative, got %s", c.SessionTTL))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("sweepInterval must be positive, got %s", c.SweepInterval))
	}
	if c.TopN <= 0 {
		errs = append(errs, fmt.Errorf("topN must be positive, got %d", c.TopN))
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language %q: %w", c.Language, err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DataSource converts the source settings for dataset.Load.
func (c Config) DataSource() dataset.Source {
	return dataset.Source{
		Kind:          dataset.SourceKind(c.Source.Kind),
		StartupsPath:  c.Source.StartupsPath,
		FundingPath:   c.Source.FundingPath,
		WorkbookPath:  c.Source.WorkbookPath,
		DSN:           c.Source.DSN,
		StartupsTable: c.Source.StartupsTable,
		FundingTable:  c.Source.FundingTable,
	}
}

// LanguageTag is the parsed Language; English when it does not parse.
func (c Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}
