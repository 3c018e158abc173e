package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pion/stun/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MEET"

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`

	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string `mapstructure:"trusted_proxies"`

	Room       RoomConfig    `mapstructure:"room"`
	Limits     LimitsConfig  `mapstructure:"limits"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
	ICEServers []ICEServer   `mapstructure:"ice_servers"`
}

type RoomConfig struct {
	DefaultCapacity int `mapstructure:"default_capacity"`
	MaxCapacity     int `mapstructure:"max_capacity"`
	ChatHistory     int `mapstructure:"chat_history"`
	IDLength        int `mapstructure:"id_length"`
}

type LimitsConfig struct {
	ChatPerWindow   int           `mapstructure:"chat_per_window"`
	CreatePerWindow int           `mapstructure:"create_per_window"`
	Window          time.Duration `mapstructure:"window"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ICEServer is handed to browsers as-is; the server itself never dials it.
type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("secret", "meet-dev-secret")
	v.SetDefault("log_level", "info")
	v.SetDefault("trusted_proxies", []string{})

	v.SetDefault("room.default_capacity", 10)
	v.SetDefault("room.max_capacity", 50)
	v.SetDefault("room.chat_history", 100)
	v.SetDefault("room.id_length", 6)

	v.SetDefault("limits.chat_per_window", 20)
	v.SetDefault("limits.create_per_window", 10)
	v.SetDefault("limits.window", "10s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

// Load reads config/config.<CONFIG_ENV>.yaml (or the file given by --config),
// then MEET_* environment variables, then command line flags.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("meet", pflag.ContinueOnError)
	file := fs.String("config", "", "path to a yaml config file")
	fs.Int("port", 0, "http listen port")
	fs.String("mode", "", "gin mode: debug|release|test")
	fs.String("log-level", "", "trace|debug|info|warn|error")
	fs.String("static-path", "", "directory with the web client")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	fileName := *file
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"port":        "port",
		"mode":        "mode",
		"log_level":   "log-level",
		"static_path": "static-path",
	} {
		if f := fs.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if *file != "" {
			return nil, fmt.Errorf("read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).
		Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}

var (
	ErrBadPort     = errors.New("port out of range")
	ErrBadCapacity = errors.New("room capacity must be positive and default <= max")
	ErrBadPing     = errors.New("ping_period must be shorter than pong_wait")
)

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrBadPort, c.Port)
	}
	if c.Room.DefaultCapacity <= 0 || c.Room.MaxCapacity < c.Room.DefaultCapacity {
		return ErrBadCapacity
	}
	if c.PingPeriod >= c.PongWait {
		return ErrBadPing
	}
	for _, s := range c.ICEServers {
		for _, u := range s.URLs {
			if _, err := stun.ParseURI(u); err != nil {
				return fmt.Errorf("ice server %q: %w", u, err)
			}
		}
	}
	return nil
}
