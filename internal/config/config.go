package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"dropgrip/internal/domain"
	"dropgrip/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Title      string           `toml:"title"`
	Dropdowns  []DropdownConfig `toml:"dropdowns"`
	UISettings UISettings       `toml:"ui"`
}

// DropdownConfig describes one dropdown of the form
type DropdownConfig struct {
	Name        string          `toml:"name"`
	Label       string          `toml:"label"`
	Placeholder string          `toml:"placeholder,omitempty"`
	Multiple    bool            `toml:"multiple"`
	Search      bool            `toml:"search"`
	Portal      bool            `toml:"portal"`
	Outlined    bool            `toml:"outlined"`
	MaxHeight   int             `toml:"max_height,omitempty"`
	Width       int             `toml:"width,omitempty"`
	Options     []domain.Option `toml:"options"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	WatchConfig bool `toml:"watch_config"`
	Mouse       bool `toml:"mouse"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default config location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithPath creates a config service for path
func NewConfigServiceWithPath(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dropgrip", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:      cs.filePath,
			Dropdowns: len(cfg.Dropdowns),
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads and validates configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes and validates a TOML document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the dropdowns cannot represent
func (c *Config) Validate() error {
	names := make(map[string]bool)
	for i, dd := range c.Dropdowns {
		if dd.Name != "" {
			if names[dd.Name] {
				return fmt.Errorf("dropdown %d: duplicate name %q", i, dd.Name)
			}
			names[dd.Name] = true
		}
		if dd.MaxHeight < 0 || dd.Width < 0 {
			return fmt.Errorf("dropdown %q: max_height and width must not be negative", dd.Name)
		}
		values := make(map[string]bool, len(dd.Options))
		for _, opt := range dd.Options {
			if values[opt.Value] {
				return fmt.Errorf("dropdown %q: duplicate option value %q", dd.Name, opt.Value)
			}
			values[opt.Value] = true
		}
	}
	return nil
}

// Dropdown returns the dropdown named name
func (c *Config) Dropdown(name string) (DropdownConfig, bool) {
	for _, dd := range c.Dropdowns {
		if dd.Name == name {
			return dd, true
		}
	}
	return DropdownConfig{}, false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Title:   "dropgrip",
		Dropdowns: []DropdownConfig{
			{
				Name:   "fruit",
				Label:  "Fruit",
				Search: true,
				Options: []domain.Option{
					{Value: "apple", Label: "Apple"},
					{Value: "banana", Label: "Banana"},
					{Value: "cherry", Label: "Cherry"},
					{Value: "grape", Label: "Grape"},
					{Value: "pineapple", Label: "Pineapple"},
				},
			},
			{
				Name:     "toppings",
				Label:    "Toppings",
				Multiple: true,
				Portal:   true,
				Outlined: true,
				Options: []domain.Option{
					{Value: "cream", Label: "Whipped cream"},
					{Value: "nuts", Label: "Nuts"},
					{Value: "syrup", Label: "Maple syrup"},
					{Value: "sprinkles", Label: "Sprinkles"},
				},
			},
		},
		UISettings: UISettings{
			WatchConfig: true,
			Mouse:       true,
		},
	}
}
