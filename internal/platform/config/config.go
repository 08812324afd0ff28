package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"readenvy/internal/platform/clock"
)

type Config struct {
	DataDir   string
	DBPath    string
	ExportDir string
	Location  *time.Location
	Goals     Goals
	Reader    Reader
	Import    Import
	Log       Log
}

type Goals struct {
	DefaultDailyPages int
}

type Reader struct {
	Debounce time.Duration
}

type Import struct {
	MaxBytes  int64
	WarnBytes int64
}

type Log struct {
	Level  string
	Format string // "text" or "json"
	Path   string
}

// Load reads readenvy.yaml from dataDir (optional) with READENVY_* env overrides.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}

	v := viper.New()
	v.SetConfigName("readenvy")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("READENVY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", filepath.Join(dataDir, "readenvy.db"))
	v.SetDefault("export.dir", filepath.Join(dataDir, "vault"))
	v.SetDefault("timezone", "Local")
	v.SetDefault("goals.default_daily_pages", 20)
	v.SetDefault("reader.debounce", "1s")
	v.SetDefault("import.max_bytes", 100*1024*1024)
	v.SetDefault("import.warn_bytes", 50*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.path", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	loc, err := clock.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:   dataDir,
		DBPath:    v.GetString("database.path"),
		ExportDir: v.GetString("export.dir"),
		Location:  loc,
		Goals: Goals{
			DefaultDailyPages: v.GetInt("goals.default_daily_pages"),
		},
		Reader: Reader{
			Debounce: v.GetDuration("reader.debounce"),
		},
		Import: Import{
			MaxBytes:  v.GetInt64("import.max_bytes"),
			WarnBytes: v.GetInt64("import.warn_bytes"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Path:   v.GetString("log.path"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Goals.DefaultDailyPages <= 0 {
		return fmt.Errorf("goals.default_daily_pages must be positive")
	}
	if c.Reader.Debounce <= 0 {
		return fmt.Errorf("reader.debounce must be positive")
	}
	if c.Import.MaxBytes <= 0 {
		return fmt.Errorf("import.max_bytes must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}
