package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment override, e.g. MAILBOX_THEME.
const EnvPrefix = "MAILBOX_"

// Config holds all mailbox configuration.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Compose ComposeConfig `toml:"compose"`
	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`
}

// UIConfig holds TUI display settings.
type UIConfig struct {
	// Theme is one of "light", "dark" or "system".
	Theme         string `toml:"theme" env:"THEME"`
	DefaultFolder string `toml:"default_folder" env:"DEFAULT_FOLDER"`
	PreviewLength int    `toml:"preview_length" env:"PREVIEW_LENGTH"`
}

// ComposeConfig is the identity used for sent mail, drafts and replies.
type ComposeConfig struct {
	Sender      string `toml:"sender" env:"SENDER"`
	SenderEmail string `toml:"sender_email" env:"SENDER_EMAIL"`
}

// StoreConfig selects the email store backend. Both backends keep data in
// memory only.
type StoreConfig struct {
	Backend  string `toml:"backend" env:"STORE"`
	Fixtures bool   `toml:"fixtures" env:"FIXTURES"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
	// File receives TUI logs. Empty means DataDir()/mailbox.log.
	File string `toml:"file" env:"LOG_FILE"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

func defaults() Config {
	return Config{
		UI: UIConfig{
			Theme:         "system",
			DefaultFolder: "inbox",
			PreviewLength: 90,
		},
		Compose: ComposeConfig{
			Sender: "You",
		},
		Store: StoreConfig{
			Backend:  BackendMemory,
			Fixtures: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config from path, then applies a .env file from the working
// directory and MAILBOX_* environment variables on top. If path is empty
// or missing, the file layer is skipped.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("invalid ui.theme %q: want light, dark or system", c.UI.Theme)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("invalid store.backend %q: want %s or %s", c.Store.Backend, BackendMemory, BackendSQLite)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: want text or json", c.Log.Format)
	}
	if c.UI.PreviewLength < 1 {
		return fmt.Errorf("invalid ui.preview_length %d: must be positive", c.UI.PreviewLength)
	}
	if c.UI.DefaultFolder == "" {
		return fmt.Errorf("ui.default_folder must not be empty")
	}
	return nil
}

// LogFile returns the configured TUI log path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(DataDir(), "mailbox.log")
}

// DefaultPath returns the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ConfigDir returns the mailbox config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbox")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mailbox")
}

// DataDir returns the mailbox data directory path. Only logs go there.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbox")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mailbox")
}
