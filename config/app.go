package config

import "github.com/kbukum/pktchain/validation"

// Config is the pktchain application configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Chain     ChainConfig     `yaml:"chain" mapstructure:"chain"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// ChainConfig selects the chain the CLI runs.
type ChainConfig struct {
	// Descriptor is the default chain descriptor.
	Descriptor string `yaml:"descriptor" mapstructure:"descriptor"`
	// Separator splits stdin into packets.
	Separator string `yaml:"separator" mapstructure:"separator"`
	// Catalog is an optional YAML chain catalog.
	Catalog string `yaml:"catalog" mapstructure:"catalog"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	MaxConns   int    `yaml:"max_conns" mapstructure:"max_conns"`
	JWTSecret  string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	MaxPackets int    `yaml:"max_packets" mapstructure:"max_packets"`
}

// TelemetryConfig configures OTLP export.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Defaults returns the chain, server and telemetry defaults to load over.
// Service fields are filled by ApplyDefaults after loading.
func Defaults() Config {
	return Config{
		Chain: ChainConfig{Separator: "\n"},
		Server: ServerConfig{
			Addr:       ":8080",
			MaxConns:   256,
			MaxPackets: 4096,
		},
		Telemetry: TelemetryConfig{
			Endpoint:   "localhost:4318",
			Insecure:   true,
			SampleRate: 1.0,
		},
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()

	if c.Chain.Separator == "" {
		c.Chain.Separator = "\n"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxConns == 0 {
		c.Server.MaxConns = 256
	}
	if c.Server.MaxPackets == 0 {
		c.Server.MaxPackets = 4096
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}

	v := validation.New().
		Required("server.addr", c.Server.Addr).
		Range("server.max_conns", c.Server.MaxConns, 1, 65535).
		Min("server.max_packets", c.Server.MaxPackets, 1)
	if c.Server.JWTSecret != "" {
		v.Custom(len(c.Server.JWTSecret) >= 16, "server.jwt_secret", "must be at least 16 bytes")
	}
	if c.Telemetry.Enabled {
		v.Required("telemetry.endpoint", c.Telemetry.Endpoint).
			Custom(c.Telemetry.SampleRate >= 0 && c.Telemetry.SampleRate <= 1, "telemetry.sample_rate", "must be between 0 and 1")
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
