package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("got port %q, want 8080", cfg.App.Port)
	}
	if !cfg.App.IsDev() {
		t.Error("expected dev environment by default")
	}
	if cfg.DB.Path != ":memory:" {
		t.Errorf("got db path %q, want :memory:", cfg.DB.Path)
	}
	if !cfg.DB.InMemory() {
		t.Error("expected default datasource to be in-memory")
	}
	if !cfg.DB.SeedDemoData {
		t.Error("expected demo seeding on by default")
	}
	if cfg.Redis.Enabled() {
		t.Error("expected redis disabled without a url")
	}
	if cfg.Redis.ChannelPrefix != "orders.branch" {
		t.Errorf("got channel prefix %q", cfg.Redis.ChannelPrefix)
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics on by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BAZAAR_APP_ENV", "prod")
	t.Setenv("BAZAAR_APP_PORT", "9090")
	t.Setenv("BAZAAR_DB_PATH", "/var/lib/bazaar/store.db")
	t.Setenv("BAZAAR_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Error("expected prod environment")
	}
	if cfg.App.Port != "9090" {
		t.Errorf("got port %q, want 9090", cfg.App.Port)
	}
	if cfg.DB.InMemory() {
		t.Error("expected file-backed datasource")
	}
	if !cfg.Redis.Enabled() {
		t.Error("expected redis enabled")
	}
}
