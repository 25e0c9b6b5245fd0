package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"veilchat/internal/auth"
	"veilchat/internal/session"
	"veilchat/internal/store"
	"veilchat/internal/transport"
)

// ConfigEnv names the environment variable consulted when --config is not given.
const ConfigEnv = "VEILCHAT_CONFIG"

// Config holds runtime options. Values come from Defaults, then an
// optional config file, then explicitly set flags.
type Config struct {
	Home           string `toml:"home" yaml:"home"`                       // state directory, e.g. $HOME/.veilchat
	KeyFile        string `toml:"key_file" yaml:"key_file"`               // default <home>/session.key
	EnrollmentFile string `toml:"enrollment_file" yaml:"enrollment_file"` // default <home>/enrollment.json

	Address string `toml:"address" yaml:"address"` // server to dial
	Listen  string `toml:"listen" yaml:"listen"`   // address to bind

	ConnectTimeout  Duration `toml:"connect_timeout" yaml:"connect_timeout"`
	AcceptTimeout   Duration `toml:"accept_timeout" yaml:"accept_timeout"`
	IdleTimeout     Duration `toml:"idle_timeout" yaml:"idle_timeout"`
	AuthTimeout     Duration `toml:"auth_timeout" yaml:"auth_timeout"`
	ResponseTimeout Duration `toml:"response_timeout" yaml:"response_timeout"` // client only
	PollInterval    Duration `toml:"poll_interval" yaml:"poll_interval"`

	Auth string `toml:"auth" yaml:"auth"` // "totp" or "none"

	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"` // "auto", "text" or "json"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Address:         "localhost:" + transport.DefaultPort,
		Listen:          ":" + transport.DefaultPort,
		ConnectTimeout:  Duration(10 * time.Second),
		AcceptTimeout:   Duration(120 * time.Second),
		IdleTimeout:     Duration(60 * time.Second),
		AuthTimeout:     Duration(auth.DefaultTimeout),
		ResponseTimeout: Duration(60 * time.Second),
		PollInterval:    Duration(session.DefaultPollInterval),
		Auth:            auth.MethodTOTP,
		LogLevel:        "info",
		LogFormat:       "auto",
	}
}

// BindFlags registers a flag for every option, using the current values
// as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Home, "home", c.Home, "state dir (default ~/.veilchat)")
	fs.StringVar(&c.KeyFile, "key-file", c.KeyFile, "key record path (default <home>/session.key)")
	fs.StringVar(&c.EnrollmentFile, "enrollment-file", c.EnrollmentFile,
		"authenticator enrollment path (default <home>/enrollment.json)")
	fs.StringVar(&c.Address, "address", c.Address, "server address to connect to")
	fs.StringVar(&c.Listen, "listen", c.Listen, "address the server binds")
	fs.Var(&c.ConnectTimeout, "connect-timeout", "time allowed to reach the server")
	fs.Var(&c.AcceptTimeout, "accept-timeout", "time the server waits for a client")
	fs.Var(&c.IdleTimeout, "idle-timeout", "close the connection after this long without messages")
	fs.Var(&c.AuthTimeout, "auth-timeout", "time allowed for operator authentication")
	fs.Var(&c.ResponseTimeout, "response-timeout", "time the client waits for each reply (0 = no limit)")
	fs.Var(&c.PollInterval, "poll-interval", "how often the idle deadline is checked")
	fs.StringVar(&c.Auth, "auth", c.Auth, "operator authentication: totp or none")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: auto, text or json")
}

// Load merges the config file at path into c. Flags already set on fs
// keep their values. An empty path is a no-op.
func (c *Config) Load(path string, fs *pflag.FlagSet) error {
	if path == "" {
		return nil
	}
	explicit := make(map[string]string)
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { explicit[f.Name] = f.Value.String() })
	}
	if err := c.LoadFile(path); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

// LoadFile decodes a .toml, .yaml or .yml file into c.
func (c *Config) LoadFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported format (use .toml, .yaml or .yml)", path)
	}
	return nil
}

// ResolvePaths fills Home, KeyFile and EnrollmentFile when unset.
func (c *Config) ResolvePaths() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".veilchat")
	}
	if c.KeyFile == "" {
		c.KeyFile = filepath.Join(c.Home, store.KeyFilename)
	}
	if c.EnrollmentFile == "" {
		c.EnrollmentFile = filepath.Join(c.Home, store.EnrollmentFilename)
	}
	return nil
}

// Validate rejects negative timeouts, empty addresses and unknown names.
func (c *Config) Validate() error {
	for name, d := range map[string]Duration{
		"connect_timeout":  c.ConnectTimeout,
		"accept_timeout":   c.AcceptTimeout,
		"idle_timeout":     c.IdleTimeout,
		"auth_timeout":     c.AuthTimeout,
		"response_timeout": c.ResponseTimeout,
		"poll_interval":    c.PollInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", name, d)
		}
	}
	if c.PollInterval == 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.IdleTimeout > 0 && c.PollInterval >= c.IdleTimeout {
		return fmt.Errorf("poll_interval (%s) must be shorter than idle_timeout (%s)", c.PollInterval, c.IdleTimeout)
	}
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Listen == "" {
		return errors.New("listen must not be empty")
	}
	switch c.Auth {
	case auth.MethodTOTP, auth.MethodNone:
	default:
		return fmt.Errorf("unknown auth method %q (want %s or %s)", c.Auth, auth.MethodTOTP, auth.MethodNone)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
