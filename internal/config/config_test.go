package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("TOKEN_STORE", "")
	t.Setenv("SESSION_CHECK_EXPIRY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "http://localhost:5000" {
		t.Fatalf("API.URL = %q", cfg.API.URL)
	}
	if cfg.TokenStore.Kind != TokenStoreBolt {
		t.Fatalf("TokenStore.Kind = %q, want %q", cfg.TokenStore.Kind, TokenStoreBolt)
	}
	if cfg.Session.CheckExpiry {
		t.Fatal("expiry check enabled by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("MONITOR_INTERVAL", "1m")
	t.Setenv("TOKEN_STORE", "Redis")
	t.Setenv("SESSION_CHECK_EXPIRY", "true")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "https://api.example.com" {
		t.Fatalf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 3*time.Second || cfg.API.MonitorInterval != time.Minute {
		t.Fatalf("durations = %v, %v", cfg.API.Timeout, cfg.API.MonitorInterval)
	}
	if cfg.TokenStore.Kind != TokenStoreRedis || !cfg.Session.CheckExpiry {
		t.Fatalf("token store = %q, check expiry = %v", cfg.TokenStore.Kind, cfg.Session.CheckExpiry)
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Fatalf("Address() = %q", cfg.Address())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"api url":     {"API_URL": "localhost:5000"},
		"token store": {"TOKEN_STORE": "sqlite"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
