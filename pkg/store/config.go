package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
)

type Config interface {
	BasePath() string
	Backend() Backend
	// Location is the zone used to decide what "today" is. Nil means local.
	Location() *time.Location
}

// LoadConfig reads .daybook.yaml from $DAYBOOK_CONFIG_PATH or the working
// directory, overlaid with DAYBOOK_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.daybook")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("timezone", "")
	v.SetDefault("verbose", false)
	v.SetDefault("budget", 0)
	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg, err := newFileConfig(v.GetString("path"), v.GetString("backend"), v.GetString("timezone"), v.GetBool("verbose"))
	if err != nil {
		return nil, err
	}
	if cfg.Amount = v.GetFloat64("budget"); cfg.Amount < 0 {
		return nil, fmt.Errorf("store: budget %v is negative", cfg.Amount)
	}
	return cfg, nil
}

// SaveBudget records amount as the budget in .daybook.yaml and returns the
// file written. An existing file is updated in place, keeping its other keys;
// otherwise a new one is created in $DAYBOOK_CONFIG_PATH or the working
// directory.
func SaveBudget(amount float64) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("store: budget %v is negative", amount)
	}
	dirs := []string{"./"}
	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		dirs = append([]string{override}, dirs...)
	}
	file := filepath.Join(dirs[0], ".daybook.yaml")
	for _, dir := range dirs {
		candidate := filepath.Join(dir, ".daybook.yaml")
		if _, err := os.Stat(candidate); err == nil {
			file = candidate
			break
		}
	}

	v := viper.New()
	v.SetConfigFile(file)
	if _, err := os.Stat(file); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("store: read config: %w", err)
		}
	}
	v.Set("budget", amount)
	if err := v.WriteConfigAs(file); err != nil {
		return "", fmt.Errorf("store: write config: %w", err)
	}
	return file, nil
}

func newFileConfig(path, backend, timezone string, verbose bool) (*fileConfig, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", path, err)
	}

	b := Backend(strings.ToLower(strings.TrimSpace(backend)))
	switch b {
	case "":
		b = BackendDiskv
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q (expected diskv or sqlite)", backend)
	}

	var loc *time.Location
	if tz := strings.TrimSpace(timezone); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("store: timezone %q: %w", tz, err)
		}
	}

	return &fileConfig{Path: expanded, Kind: b, Zone: loc, Debug: verbose}, nil
}

type fileConfig struct {
	Path   string
	Kind   Backend
	Zone   *time.Location
	Debug  bool
	Amount float64
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() Backend {
	return f.Kind
}

func (f *fileConfig) Location() *time.Location {
	return f.Zone
}

// Verbose reports whether debug logging was requested in config.
func (f *fileConfig) Verbose() bool {
	return f.Debug
}

// Budget is the configured spending budget, zero when unset.
func (f *fileConfig) Budget() float64 {
	return f.Amount
}

// Budget returns the spending budget cfg carries, or zero.
func Budget(cfg Config) float64 {
	if b, ok := cfg.(interface{ Budget() float64 }); ok {
		return b.Budget()
	}
	return 0
}

// Verbose reports whether cfg asks for debug logging.
func Verbose(cfg Config) bool {
	v, ok := cfg.(interface{ Verbose() bool })
	return ok && v.Verbose()
}

// Now returns the current time in the configured zone.
func Now(cfg Config) time.Time {
	now := time.Now()
	if cfg != nil {
		if loc := cfg.Location(); loc != nil {
			return now.In(loc)
		}
	}
	return now
}
