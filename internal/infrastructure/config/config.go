package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server    ServerConfig    `koanf:"server"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Provider  ProviderConfig  `koanf:"provider"`
	Redis     RedisConfig     `koanf:"redis"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Address returns the listen address for the HTTP server
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

type CORSConfig struct {
	// AllowedOrigins is a comma-separated allowlist of origins.
	// Empty means every origin is allowed (demo default).
	AllowedOrigins string `koanf:"allowed_origins"`
}

// Origins returns the parsed origin allowlist
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type RateLimitConfig struct {
	// PerMinute caps requests per client across all numbers
	PerMinute int `koanf:"per_minute"`
	// PerNumberPerMinute caps requests per normalized phone number
	PerNumberPerMinute int `koanf:"per_number_per_minute"`
}

// ProviderMode selects the call dispatcher implementation at startup
type ProviderMode string

const (
	ProviderModeMock   ProviderMode = "mock"
	ProviderModeTwilio ProviderMode = "twilio"
)

type ProviderConfig struct {
	Mode              ProviderMode  `koanf:"mode"`
	AccountSID        string        `koanf:"account_sid"`
	AuthToken         string        `koanf:"auth_token"`
	FromNumber        string        `koanf:"from_number"`
	VoiceURL          string        `koanf:"voice_url"`
	StatusCallbackURL string        `koanf:"status_callback_url"`
	Timeout           time.Duration `koanf:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type TelemetryConfig struct {
	Enabled       bool          `koanf:"enabled"`
	OTLPEndpoint  string        `koanf:"otlp_endpoint"`
	SamplingRate  float64       `koanf:"sampling_rate"`
	ExportTimeout time.Duration `koanf:"export_timeout"`
	BatchTimeout  time.Duration `koanf:"batch_timeout"`
}

// Load builds configuration from defaults, an optional YAML file, and
// DCG_-prefixed environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerMinute:          6,
			PerNumberPerMinute: 2,
		},
		Provider: ProviderConfig{
			Mode:    ProviderModeMock,
			Timeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:  "localhost:4317",
			SamplingRate:  1.0,
			ExportTimeout: 30 * time.Second,
			BatchTimeout:  5 * time.Second,
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Config file is optional
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	_ = k.Load(file.Provider(configPath), yaml.Parser())

	// Override with environment variables
	if err := k.Load(env.Provider("DCG_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "DCG_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider.Mode {
	case ProviderModeMock, ProviderModeTwilio:
	default:
		return fmt.Errorf("unknown provider mode %q", c.Provider.Mode)
	}
	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be positive")
	}
	if c.RateLimit.PerNumberPerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_number_per_minute must be positive")
	}
	return nil
}
