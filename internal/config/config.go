// Package config loads flix configuration from CUE files.
//
// A config file is unified with the embedded #Config schema. The schema
// is closed, so a misspelled field is an error rather than silently
// ignored, and every omitted field takes its schema default.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded configuration.
type Config struct {
	Inventory string         `json:"inventory"`
	Admin     AdminConfig    `json:"admin"`
	Accounts  AccountsConfig `json:"accounts"`
	Journal   JournalConfig  `json:"journal"`
	Log       LogConfig      `json:"log"`
}

// AdminConfig holds the administrator credentials.
type AdminConfig struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// AccountsConfig controls the account registry.
type AccountsConfig struct {
	Max        int `json:"max"`
	BcryptCost int `json:"bcrypt_cost"`
}

// JournalConfig locates the activity journal.
type JournalConfig struct {
	Path string `json:"path"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `json:"level"`
}

// Level maps Log.Level to a slog level. Unknown names map to Info.
func (c *Config) Level() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads the CUE file at path and returns the resulting configuration.
// An empty path returns the defaults.
//
// Relative inventory and journal paths are resolved against the directory
// of the config file.
func Load(path string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	value := schema.LookupPath(cue.ParsePath("#Config"))

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		user := ctx.CompileBytes(data, cue.Filename(path))
		if err := user.Err(); err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
		value = value.Unify(user)
		if err := value.Validate(); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if path != "" {
		dir := filepath.Dir(path)
		cfg.Inventory = resolve(dir, cfg.Inventory)
		if cfg.Journal.Path != ":memory:" {
			cfg.Journal.Path = resolve(dir, cfg.Journal.Path)
		}
	}

	return &cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
