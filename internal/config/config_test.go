// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

// configEnvVars lists every variable Load reads, so tests can reset them.
var configEnvVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"AI_PROVIDER",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"MISTRAL_API_KEY", "MISTRAL_MODEL", "MISTRAL_BASE_URL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"S3_BUCKET", "S3_PUBLIC_URL",
}

// clearConfigEnv blanks every config variable for the duration of the
// test. An empty value falls through to the default.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	checks := map[string][2]string{
		"Host":         {cfg.Host, "0.0.0.0"},
		"Port":         {cfg.Port, "8080"},
		"Env":          {cfg.Env, "development"},
		"DBHost":       {cfg.DBHost, "localhost"},
		"DBPort":       {cfg.DBPort, "5432"},
		"DBUser":       {cfg.DBUser, "gavel"},
		"DBPassword":   {cfg.DBPassword, "changeme"},
		"DBName":       {cfg.DBName, "gavel"},
		"ValkeyHost":   {cfg.ValkeyHost, "localhost"},
		"ValkeyPort":   {cfg.ValkeyPort, "6379"},
		"AIProvider":   {cfg.AIProvider, "openai"},
		"OpenAIModel":  {cfg.OpenAIModel, "gpt-4o-mini"},
		"MistralModel": {cfg.MistralModel, "mistral-small-latest"},
		"S3Region":     {cfg.S3Region, "eu-central"},
		"S3Bucket":     {cfg.S3Bucket, "gavel-media"},
	}
	for field, pair := range checks {
		if pair[0] != pair[1] {
			t.Errorf("%s: got %q, want %q", field, pair[0], pair[1])
		}
	}

	if cfg.OpenAIKey != "" || cfg.MistralKey != "" {
		t.Error("API keys have no defaults")
	}
	if cfg.S3Endpoint != "" {
		t.Error("S3 endpoint has no default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("AI_PROVIDER", "mistral")
	t.Setenv("MISTRAL_API_KEY", "mk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port: got %q, want 9090", cfg.Port)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost: got %q, want db.internal", cfg.DBHost)
	}
	if cfg.AIProvider != "mistral" || cfg.MistralKey != "mk-test" {
		t.Errorf("AI settings: got (%q, %q)", cfg.AIProvider, cfg.MistralKey)
	}
}

func TestLoadProductionRequiresRealPassword(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	} else if !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
		t.Errorf("error should name the offending variable: %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cure")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with real password: %v", err)
	}
	if cfg.IsDev() {
		t.Error("production config should not report development mode")
	}
}

func TestConfigDSNAndAddr(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "8080",
		DBUser: "gavel", DBPassword: "pw", DBHost: "localhost", DBPort: "5432", DBName: "gavel",
	}

	wantDSN := "postgres://gavel:pw@localhost:5432/gavel?sslmode=disable"
	if got := cfg.DSN(); got != wantDSN {
		t.Errorf("DSN: got %q, want %q", got, wantDSN)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr: got %q, want 127.0.0.1:8080", got)
	}
}
