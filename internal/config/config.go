package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/HaPhanBaoMinh/supmet/help"
	"github.com/HaPhanBaoMinh/supmet/internal/analytics"
)

// EnvPrefix prefixes every environment override, e.g. SUPMET_LOG_LEVEL.
const EnvPrefix = "SUPMET"

type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`

	// Month is the month selected at startup. Empty means the current month.
	Month string `mapstructure:"month"`

	// Path is the config file that was read, empty when running on
	// defaults and environment only.
	Path string `mapstructure:"-"`
}

type CalendarConfig struct {
	Months  []string `mapstructure:"months"`
	Current string   `mapstructure:"current"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	File   string `mapstructure:"file"`
}

func (c *Config) AnalyticsCalendar() analytics.Calendar {
	return analytics.Calendar{Months: c.Calendar.Months, Current: c.Calendar.Current}
}

// StartMonth is the month to open the dashboard on.
func (c *Config) StartMonth() string {
	if c.Month == "" {
		return c.Calendar.Current
	}
	return c.Month
}

// flag name -> config key
var flagKeys = map[string]string{
	"month":     "month",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// RegisterFlags adds the flags that Load binds over the config file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config file (default "+help.DefaultConfigPath()+")")
	fs.String("month", "", "month to open on, e.g. \"June 2025\"")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-file", "", "log file path")
}

// Load merges defaults, the YAML config file, SUPMET_* environment variables
// and flags in fs (highest priority). path may be empty, in which case the
// default location is tried and its absence is not an error.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Dir(help.DefaultConfigPath()))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	cal := analytics.DefaultCalendar()
	v.SetDefault("calendar.months", cal.Months)
	v.SetDefault("calendar.current", cal.Current)
	v.SetDefault("month", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "supmet.log"))
}

func validate(cfg *Config) error {
	cal := cfg.AnalyticsCalendar()
	if err := cal.Validate(); err != nil {
		return err
	}
	if cfg.Month != "" && cal.Index(cfg.Month) < 0 {
		return fmt.Errorf("month %q: %w", cfg.Month, analytics.ErrUnknownMonth)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	if cfg.Log.File == "" {
		return errors.New("log.file is required")
	}
	return nil
}
