// Package config loads and saves user preferences.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
)

// Tile size limits for graphical ports.
const (
	MinTileSize     = 12
	MaxTileSize     = 64
	DefaultTileSize = 24
)

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the on-disk preference file.
type Config struct {
	Port        string            `yaml:"port"`
	Locale      string            `yaml:"locale"`
	LocaleDir   string            `yaml:"locale_dir"`
	TileSize    int               `yaml:"tile_size"`
	TileMap     string            `yaml:"tile_map,omitempty"`
	Bell        bool              `yaml:"bell"`
	DECGraphics bool              `yaml:"dec_graphics"`
	WebAddr     string            `yaml:"web_addr"`
	Seed        int64             `yaml:"seed,omitempty"`
	Log         Log               `yaml:"log"`
	Bindings    map[string]string `yaml:"bindings,omitempty"`

	path string
	mu   sync.Mutex
}

// Default returns the built-in preferences.
func Default() *Config {
	return &Config{
		Port:      "tui",
		Locale:    "en_GB",
		LocaleDir: "locales",
		TileSize:  DefaultTileSize,
		WebAddr:   "127.0.0.1:8080",
		Log:       Log{Level: "info", Format: "text"},
	}
}

var (
	current   = Default()
	currentMu sync.RWMutex
)

// Current returns the active preferences.
func Current() *Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active preferences.
func SetCurrent(c *Config) {
	currentMu.Lock()
	current = c
	currentMu.Unlock()
}

// DefaultPath is $XDG_CONFIG_HOME/nhport/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "nhport", "config.yaml"), nil
}

// Load reads path. A missing file yields the defaults bound to path, so a
// later Save creates it.
func Load(path string) (*Config, error) {
	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if c.TileSize < MinTileSize || c.TileSize > MaxTileSize {
		c.TileSize = DefaultTileSize
	}
	return c, nil
}

// Overrides are command-line values for one run. They never reach the
// preference file.
type Overrides struct {
	Port     string
	WebAddr  string
	LogLevel string
	Seed     int64
}

// Effective returns a copy of c with the non-zero overrides applied. The
// copy has no path, so Save on it fails instead of overwriting the file.
func (c *Config) Effective(o Overrides) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &Config{
		Port:        c.Port,
		Locale:      c.Locale,
		LocaleDir:   c.LocaleDir,
		TileSize:    c.TileSize,
		TileMap:     c.TileMap,
		Bell:        c.Bell,
		DECGraphics: c.DECGraphics,
		WebAddr:     c.WebAddr,
		Seed:        c.Seed,
		Log:         c.Log,
		Bindings:    make(map[string]string, len(c.Bindings)),
	}
	for k, v := range c.Bindings {
		e.Bindings[k] = v
	}
	if o.Port != "" {
		e.Port = o.Port
	}
	if o.WebAddr != "" {
		e.WebAddr = o.WebAddr
	}
	if o.LogLevel != "" {
		e.Log.Level = o.LogLevel
	}
	if o.Seed != 0 {
		e.Seed = o.Seed
	}
	return e
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to its path.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", c.path, err)
	}
	return nil
}

// SetTileSize clamps and stores a new tile size, then saves.
func (c *Config) SetTileSize(size int) error {
	if size < MinTileSize {
		size = MinTileSize
	}
	if size > MaxTileSize {
		size = MaxTileSize
	}
	c.mu.Lock()
	c.TileSize = size
	c.mu.Unlock()
	return c.Save()
}

// GetTileSize returns the tile size.
func (c *Config) GetTileSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.TileSize
}

// ParseKey reads a key description: a single character, "^x" for a
// control key, or one of "esc", "enter", "space", "tab".
func ParseKey(s string) (event.Key, error) {
	switch strings.ToLower(s) {
	case "esc", "escape":
		return event.KeyEscape, nil
	case "enter", "return":
		return event.KeyEnter, nil
	case "space":
		return ' ', nil
	case "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) == 2 && r[0] == '^' {
		return event.Ctrl(r[1]), nil
	}
	if len(r) == 1 {
		return event.Key(r[0]), nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// ApplyBindings installs the configured bindings into km. Each entry maps
// an action name (see command.BindingNames) to a key; the key becomes the
// only key for that action, and "none" unbinds the action. All bad entries
// are reported together.
func (c *Config) ApplyBindings(km *command.Keymap) error {
	var errs []error
	for name, keyDesc := range c.Bindings {
		b, ok := command.ParseBinding(name)
		if !ok {
			errs = append(errs, fmt.Errorf("binding %q: unknown action", name))
			continue
		}
		if strings.EqualFold(keyDesc, "none") {
			for _, k := range km.KeysFor(b) {
				km.Unbind(k)
			}
			continue
		}
		k, err := ParseKey(keyDesc)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %q: %w", name, err))
			continue
		}
		if !km.SetSingleBinding(b, k) {
			errs = append(errs, fmt.Errorf("binding %q: key %q is reserved", name, keyDesc))
		}
	}
	return errors.Join(errs...)
}
