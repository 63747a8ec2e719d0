// Package config loads stockroom settings from a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/erazemk/stockroom/internal/client"
)

// Environment variable names.
const (
	EnvAPIURL  = "STOCKROOM_API_URL"
	EnvAddr    = "STOCKROOM_ADDR"
	EnvDB      = "STOCKROOM_DB"
	EnvTimeout = "STOCKROOM_TIMEOUT"
	EnvLog     = "STOCKROOM_LOG"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	APIURL  string
	Addr    string
	DBPath  string
	Timeout time.Duration
	LogPath string
	Debug   bool
}

// DefaultFakeAddr is where the fake ArtGalley server listens when no address
// is configured.
const DefaultFakeAddr = ":9090"

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:  client.DefaultBaseURL,
		Addr:    ":8080",
		DBPath:  "stockroom.sqlite3",
		Timeout: client.DefaultTimeout,
	}
}

// Load returns the defaults overridden by the variables in envFile (if it
// exists) and then by the process environment. A missing envFile is not an
// error.
func Load(envFile string) (Config, error) {
	return LoadFrom(envFile, Default())
}

// LoadFrom is Load with base in place of the built-in defaults.
func LoadFrom(envFile string, base Config) (Config, error) {
	cfg := base

	file := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading %s: %w", envFile, err)
		default:
			file = vars
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLog); ok {
		cfg.LogPath = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	return cfg, cfg.Validate()
}

// RegisterFlags binds the settings to fs with short and long aliases. The
// current values become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.APIURL, "api", c.APIURL, "")
	fs.StringVar(&c.APIURL, "u", c.APIURL, "")

	fs.StringVar(&c.Addr, "addr", c.Addr, "")
	fs.StringVar(&c.Addr, "a", c.Addr, "")

	fs.StringVar(&c.DBPath, "db", c.DBPath, "")
	fs.StringVar(&c.DBPath, "d", c.DBPath, "")

	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "")
	fs.DurationVar(&c.Timeout, "t", c.Timeout, "")

	fs.StringVar(&c.LogPath, "log", c.LogPath, "")
	fs.StringVar(&c.LogPath, "l", c.LogPath, "")

	fs.BoolVar(&c.Debug, "debug", c.Debug, "")
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
