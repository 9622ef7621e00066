package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "classboard.db"
	DefaultLogName        = "classboard.log"
	DefaultTimeout        = 12 * time.Second

	// PlaceholderEndpoint is written into a fresh config so the user knows what to replace.
	PlaceholderEndpoint = "PASTE_YOUR_API_URL_HERE"

	envConfigPath = "CLASSBOARD_CONFIG"
	appDirName    = "classboard"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Homework string `toml:"homework"`
	Auto     string `toml:"auto"`
	Group    string `toml:"group"`
	Theme    string `toml:"theme"`
	Reload   string `toml:"reload"`
	Open     string `toml:"open"`
	Copy     string `toml:"copy"`
	Close    string `toml:"close"`
	Cancel   string `toml:"cancel"`
}

type Config struct {
	Endpoint string `toml:"endpoint"`
	// Timeout is a Go duration string such as "12s".
	Timeout  string `toml:"timeout"`
	Timezone string `toml:"timezone"`
	DBPath   string `toml:"db_path"`
	LogPath  string `toml:"log_path"`
	Keys     Keymap `toml:"keys"`
}

// ResolveConfigPath prefers $CLASSBOARD_CONFIG, then the per-user config dir,
// then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(base, DefaultDBName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(base, DefaultLogName)
	}
	cfg.Keys = cfg.Keys.WithDefaults()
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// TimeoutDuration falls back to DefaultTimeout for empty, unparsable or non-positive values.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func defaultConfig(base string) Config {
	return Config{
		Endpoint: PlaceholderEndpoint,
		Timeout:  DefaultTimeout.String(),
		DBPath:   filepath.Join(base, DefaultDBName),
		LogPath:  filepath.Join(base, DefaultLogName),
		Keys:     DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		Quit:     "q",
		Up:       "k",
		Down:     "j",
		Homework: "h",
		Auto:     "a",
		Group:    "g",
		Theme:    "t",
		Reload:   "r",
		Open:     "o",
		Copy:     "c",
		Close:    "x",
		Cancel:   "esc",
	}
}

func (k Keymap) WithDefaults() Keymap {
	d := DefaultKeymap()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Homework, d.Homework)
	fill(&k.Auto, d.Auto)
	fill(&k.Group, d.Group)
	fill(&k.Theme, d.Theme)
	fill(&k.Reload, d.Reload)
	fill(&k.Open, d.Open)
	fill(&k.Copy, d.Copy)
	fill(&k.Close, d.Close)
	fill(&k.Cancel, d.Cancel)
	return k
}
