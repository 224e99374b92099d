package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
server:
  host: 127.0.0.1
  port: 8080
  mode: test
  default_page_size: 10
data:
  source: file
  file:
    path: data/customers.json
log:
  level: info
  format: text
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.DefaultPageSize != 10 {
		t.Errorf("Server.DefaultPageSize = %d, want 10", cfg.Server.DefaultPageSize)
	}
	if cfg.Data.Source != "file" {
		t.Errorf("Data.Source = %q, want file", cfg.Data.Source)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__SERVER__DEFAULT_PAGE_SIZE", "20")

	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from env", cfg.Server.Port)
	}
	if cfg.Server.DefaultPageSize != 20 {
		t.Errorf("Server.DefaultPageSize = %d, want 20 from env", cfg.Server.DefaultPageSize)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			"invalid mode",
			func(c *Config) { c.Server.Mode = "production" },
			"server.mode",
		},
		{
			"port out of range",
			func(c *Config) { c.Server.Port = 0 },
			"server.port",
		},
		{
			"missing host",
			func(c *Config) { c.Server.Host = "  " },
			"server.host",
		},
		{
			"default page size above cap",
			func(c *Config) { c.Server.DefaultPageSize = 200 },
			"default_page_size",
		},
		{
			"negative default page size",
			func(c *Config) { c.Server.DefaultPageSize = -5 },
			"default_page_size",
		},
		{
			"unknown data source",
			func(c *Config) { c.Data.Source = "dynamo" },
			"data.source",
		},
		{
			"file source without path",
			func(c *Config) { c.Data.File.Path = "" },
			"data.file.path",
		},
		{
			"sqlite source without path",
			func(c *Config) { c.Data.Source = "sqlite" },
			"data.sqlite.path",
		},
		{
			"postgres source without host",
			func(c *Config) { c.Data.Source = "postgres" },
			"data.postgres.host",
		},
		{
			"bad timeout",
			func(c *Config) { c.Server.Timeout = "soon" },
			"server.timeout",
		},
		{
			"bad cors max age",
			func(c *Config) { c.Server.CORS.MaxAge = "-1h" },
			"server.cors.max_age",
		},
		{
			"bad log level",
			func(c *Config) { c.Log.Level = "verbose" },
			"log.level",
		},
		{
			"bad log format",
			func(c *Config) { c.Log.Format = "xml" },
			"log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_PostgresSSLModeInRelease(t *testing.T) {
	cfg := baseConfig()
	cfg.Server.Mode = "release"
	cfg.Data.Source = "postgres"
	cfg.Data.Postgres = PostgresConfig{
		Host: "localhost", Port: 5432, User: "u", DBName: "d", SSLMode: "disable",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected sslmode=disable to be rejected in release mode")
	}

	cfg.Data.Postgres.SSLMode = "require"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected sslmode=require to pass in release mode: %v", err)
	}
}

func TestValidate_NormalizesFields(t *testing.T) {
	cfg := baseConfig()
	cfg.Log.Level = " INFO "
	cfg.Log.Format = "JSON"
	cfg.Server.Host = " 127.0.0.1 "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want normalized", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want normalized", cfg.Log.Format)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want trimmed", cfg.Server.Host)
	}
}

func TestValidate_ZeroDefaultPageSizeAllowed(t *testing.T) {
	cfg := baseConfig()
	cfg.Server.DefaultPageSize = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero default_page_size means built-in default, got %v", err)
	}
}

func baseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			Mode:            "test",
			DefaultPageSize: 10,
		},
		Data: DataConfig{
			Source: "file",
			File:   FileConfig{Path: "data/customers.json"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
