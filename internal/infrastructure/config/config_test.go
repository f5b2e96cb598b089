package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %s", cfg.Env)
	}
	if cfg.Redis.Addr == "" || cfg.Mongo.URI == "" {
		t.Fatalf("store defaults missing: %+v", cfg)
	}
}

func TestLoad_InvalidDurationIsAnError(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a malformed duration")
	}
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("UPSTREAM_BASE_URL", "https://members.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("PORT override not applied: %s", cfg.Port)
	}
	if cfg.Upstream.BaseURL != "https://members.example.org" {
		t.Fatalf("UPSTREAM_BASE_URL override not applied: %s", cfg.Upstream.BaseURL)
	}
}
