package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/pktchain/errors"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		var cfg ServiceConfig
		cfg.ApplyDefaults()
		if cfg.Name != "pktchain" || cfg.Environment != "development" {
			t.Errorf("unexpected defaults %+v", cfg)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging defaults, got %+v", cfg.Logging)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging"},
		{"negative max conns", func(c *Config) { c.Server.MaxConns = -1 }, "server.max_conns"},
		{"negative max packets", func(c *Config) { c.Server.MaxPackets = -5 }, "server.max_packets"},
		{"short jwt secret", func(c *Config) { c.Server.JWTSecret = "short" }, "server.jwt_secret"},
		{"sample rate", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.SampleRate = 2
		}, "telemetry.sample_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: pktchain
environment: staging
logging:
  level: debug
  format: json
chain:
  descriptor: "tok=delim=;,concat"
server:
  addr: ":9090"
  max_packets: 10
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Defaults()
	if err := LoadConfig("pktchain", &cfg, WithConfigFile(configPath), WithFileSystem(RealFileSystem{})); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.ApplyDefaults()

	if cfg.Environment != "staging" || cfg.Debug {
		t.Errorf("unexpected service fields %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Chain.Descriptor != "tok=delim=;,concat" {
		t.Errorf("unexpected descriptor %q", cfg.Chain.Descriptor)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxPackets != 10 {
		t.Errorf("unexpected server %+v", cfg.Server)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.MaxConns != 256 || cfg.Chain.Separator != "\n" || !cfg.Telemetry.Insecure {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PKTCHAIN_CHAIN_DESCRIPTOR", "concat=nr=4")
	t.Setenv("PKTCHAIN_SERVER_MAX_CONNS", "12")
	t.Setenv("PKTCHAIN_SERVER_JWT_SECRET", "0123456789abcdef")
	t.Setenv("OTHER_SERVER_ADDR", ":1")

	cfg := Defaults()
	if err := LoadConfig("pktchain", &cfg, WithFileSystem(&mockFS{})); err != nil {
		t.Fatal(err)
	}
	if cfg.Chain.Descriptor != "concat=nr=4" {
		t.Errorf("unexpected descriptor %q", cfg.Chain.Descriptor)
	}
	if cfg.Server.MaxConns != 12 {
		t.Errorf("unexpected max conns %d", cfg.Server.MaxConns)
	}
	if cfg.Server.JWTSecret != "0123456789abcdef" {
		t.Errorf("unexpected secret %q", cfg.Server.JWTSecret)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unprefixed variable leaked: %q", cfg.Server.Addr)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("chain: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Defaults()
	err := LoadConfig("pktchain", &cfg, WithConfigFile(path))
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := Defaults()
	if err := LoadConfig("pktchain", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("config", "config.yml"): true,
		filepath.Join("cmd", "pktchain", ".env"): true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("pktchain", LoaderConfig{})
	if files.ConfigFile != filepath.Join("config", "config.yml") {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != filepath.Join("cmd", "pktchain", ".env") {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}

	explicit := (&Resolver{FileSystem: fs}).ResolveFiles("pktchain", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("expected explicit path kept, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("SERVER_JWT_SECRET")
	for _, want := range []string{"server.jwt_secret", "server_jwt.secret", "server.jwt.secret", "server_jwt_secret"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing %q in %v", want, got)
		}
	}
	if got := envKeyVariants("NAME"); !slices.Equal(got, []string{"name"}) {
		t.Errorf("unexpected %v", got)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("pkt-chain"); got != "PKT_CHAIN_" {
		t.Errorf("unexpected prefix %q", got)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
