// Package config provides configuration loading for teletext using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
	UseBrowser     bool   `toml:"useBrowser"`
}

// Page parsing settings
type Parser struct {
	StrictColors bool `toml:"strictColors"` // fail on malformed color classes
}

// Display settings
type Display struct {
	Channel     string `toml:"channel"`     // channel shown at startup
	StartPage   string `toml:"startPage"`   // page shown at startup
	Plain       bool   `toml:"plain"`       // never emit colors
	ClearScreen bool   `toml:"clearScreen"` // clear before each page
}

// Logging settings
type Log struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // optional JSON log file
}

// Config is the main configuration struct
type Config struct {
	Fetcher  Fetcher           `toml:"fetcher"`
	Parser   Parser            `toml:"parser"`
	Display  Display           `toml:"display"`
	Log      Log               `toml:"log"`
	Channels map[string]string `toml:"channels"` // name -> URL template with {page}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:      "teletext/1.0 (Terminal Teletext Viewer)",
			TimeoutSeconds: 15,
		},
		Display: Display{
			Channel:     "zdf",
			StartPage:   "100",
			ClearScreen: true,
		},
		Log: Log{
			Level: "warn",
		},
		Channels: map[string]string{
			"zdf":     "https://teletext.zdf.de/teletext/zdf/seiten/klassisch/{page}.html",
			"zdfinfo": "https://teletext.zdf.de/teletext/zdfinfo/seiten/klassisch/{page}.html",
			"zdfneo":  "https://teletext.zdf.de/teletext/zdfneo/seiten/klassisch/{page}.html",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "teletext"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile is Load for an explicit path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, md, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	result := merge(cfg, userCfg)
	// clearScreen defaults to true, so only an explicit key can turn it off.
	if md.IsDefined("display", "clearScreen") {
		result.Display.ClearScreen = userCfg.Display.ClearScreen
	}
	return result, nil
}

// loadFromTOML loads a TOML config file and returns the config along with
// the metadata recording which keys were set.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, md, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, md, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	// Fetcher
	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	if user.Fetcher.UseBrowser {
		result.Fetcher.UseBrowser = true
	}

	// Parser
	if user.Parser.StrictColors {
		result.Parser.StrictColors = true
	}

	// Display
	if user.Display.Channel != "" {
		result.Display.Channel = user.Display.Channel
	}
	if user.Display.StartPage != "" {
		result.Display.StartPage = user.Display.StartPage
	}
	if user.Display.Plain {
		result.Display.Plain = true
	}

	// Log
	if user.Log.Level != "" {
		result.Log.Level = user.Log.Level
	}
	if user.Log.File != "" {
		result.Log.File = user.Log.File
	}

	// Channels are added to, never removed
	result.Channels = make(map[string]string, len(defaults.Channels)+len(user.Channels))
	for name, tmpl := range defaults.Channels {
		result.Channels[name] = tmpl
	}
	for name, tmpl := range user.Channels {
		result.Channels[name] = tmpl
	}

	return &result
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if _, ok := c.Channels[c.Display.Channel]; !ok {
		return fmt.Errorf("unknown channel %q", c.Display.Channel)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# teletext configuration
# Save to ~/.config/teletext/config.toml and customize
# Only include settings you want to change from defaults

# HTTP fetching settings
[fetcher]
userAgent = "teletext/1.0 (Terminal Teletext Viewer)"
timeoutSeconds = 15
chromePath = ""               # Path to Chrome/Chromium for browser mode (empty = auto-detect)
useBrowser = false            # Fetch pages with headless Chrome

# Page parsing settings
[parser]
strictColors = false          # Fail on malformed color classes instead of ignoring them

# Display settings
[display]
channel = "zdf"
startPage = "100"
plain = false                 # Never emit colors
clearScreen = true            # Clear the screen before each page

# Logging settings
[log]
level = "warn"                # debug, info, warn, error
file = ""                     # Also write JSON logs to this file

# Extra channels: name = URL template, {page} is replaced by the page number
[channels]
`
}

// FormatError formats a config error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
