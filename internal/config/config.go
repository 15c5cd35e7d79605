package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	FilePath         string `toml:"file"`
	ColumnsPath      string `toml:"columns"`
	Follow           bool   `toml:"follow"`
	Theme            Theme  `toml:"theme"`
	PageSize         int    `toml:"page_size"`
	HistoryDepth     int    `toml:"history_depth"`
	Virtualized      bool   `toml:"virtualized"`
	DemoRows         int    `toml:"demo_rows"`
	Offline          bool   `toml:"offline"`
	NoCache          bool   `toml:"no_cache"`
	OpenAIModel      string `toml:"openai_model"`
	OpenAIBase       string `toml:"openai_base_url"`
	OpenAITimeoutSec int    `toml:"openai_timeout_sec"`
	ExportFormat     string `toml:"export"`
	ExportOut        string `toml:"out"`
	EditsOut         string `toml:"edits_out"`
	LogFile          string `toml:"log_file"`

	ConfigPath  string `toml:"-"`
	ShowVersion bool   `toml:"-"`
}

func defaults() *Config {
	return &Config{
		Theme:            ThemeDark,
		PageSize:         50,
		HistoryDepth:     50,
		Virtualized:      true,
		DemoRows:         500,
		OpenAIModel:      "gpt-4o-mini",
		OpenAITimeoutSec: 60,
		EditsOut:         "edits.ndjson",
	}
}

func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs layers built-in defaults, the TOML config file, environment and
// flags, later layers winning.
func LoadArgs(args []string) (*Config, error) {
	cfg := defaults()
	cfg.ConfigPath = configPath(args)
	if cfg.ConfigPath != "" {
		if _, err := toml.DecodeFile(cfg.ConfigPath, cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfg.ConfigPath, err)
		}
	}
	cfg.OpenAIModel = getenvDefault("INSPECTGRID_OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIBase = getenvDefault("INSPECTGRID_OPENAI_BASE_URL", cfg.OpenAIBase)
	cfg.OpenAITimeoutSec = getenvDefaultInt("INSPECTGRID_OPENAI_TIMEOUT_SEC", cfg.OpenAITimeoutSec)
	cfg.HistoryDepth = getenvDefaultInt("INSPECTGRID_HISTORY_DEPTH", cfg.HistoryDepth)

	fs := flag.NewFlagSet("inspectgrid", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "TOML config file (default $INSPECTGRID_CONFIG)")
	fs.StringVar(&cfg.FilePath, "file", cfg.FilePath, "CSV or NDJSON data file (empty = demo data)")
	fs.StringVar(&cfg.ColumnsPath, "columns", cfg.ColumnsPath, "columns file (TOML or JSON); inferred when empty")
	fs.BoolVar(&cfg.Follow, "follow", cfg.Follow, "follow the data file and refresh on new rows")
	theme := string(cfg.Theme)
	fs.StringVar(&theme, "theme", theme, "theme: dark|light")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page when not virtualized")
	fs.IntVar(&cfg.HistoryDepth, "history", cfg.HistoryDepth, "undo history depth")
	fs.BoolVar(&cfg.Virtualized, "virtual", cfg.Virtualized, "scroll the whole view instead of paging")
	fs.IntVar(&cfg.DemoRows, "demo-rows", cfg.DemoRows, "rows generated in demo mode")
	fs.BoolVar(&cfg.Offline, "offline", cfg.Offline, "disable OpenAI and work offline only")
	fs.BoolVar(&cfg.NoCache, "no-cache", cfg.NoCache, "disable column cache (skip read/write)")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model override")
	fs.StringVar(&cfg.OpenAIBase, "openai-base-url", cfg.OpenAIBase, "OpenAI base URL override")
	fs.IntVar(&cfg.OpenAITimeoutSec, "openai-timeout-sec", cfg.OpenAITimeoutSec, "OpenAI request timeout in seconds")
	fs.StringVar(&cfg.ExportFormat, "export", cfg.ExportFormat, "export the loaded rows to --out and exit: csv|ndjson")
	fs.StringVar(&cfg.ExportOut, "out", cfg.ExportOut, "output path for export; also where ctrl+e writes")
	fs.StringVar(&cfg.EditsOut, "edits-out", cfg.EditsOut, "NDJSON file pending edits are flushed to")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this file")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(theme)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath finds --config ahead of flag parsing so the file can seed
// flag defaults.
func configPath(args []string) string {
	for i, a := range args {
		name, val, hasVal := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasVal {
			return val
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("INSPECTGRID_CONFIG")
}

func (c *Config) validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	switch strings.ToLower(c.ExportFormat) {
	case "", "csv", "ndjson":
	case "json":
		c.ExportFormat = "ndjson"
	default:
		return fmt.Errorf("unknown export format %q", c.ExportFormat)
	}
	if c.ExportFormat != "" && c.ExportOut == "" {
		return errors.New("--export requires --out path")
	}
	if c.Follow && c.FilePath == "" {
		return errors.New("--follow requires --file")
	}
	if c.PageSize < 0 {
		c.PageSize = 0
	}
	if c.HistoryDepth <= 0 {
		c.HistoryDepth = 50
	}
	return nil
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

func (c *Config) String() string {
	return fmt.Sprintf("file=%s follow=%v theme=%s virtual=%v page=%d history=%d offline=%v", c.FilePath, c.Follow, c.Theme, c.Virtualized, c.PageSize, c.HistoryDepth, c.Offline)
}
