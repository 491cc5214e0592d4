package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/youruser/talingchan-deck/internal/session"
)

func TestLoadFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckbuilder", "config.toml")
	cfg, err := LoadFile(path, true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Rules.MainDeckLimit != 50 || cfg.Rules.LifeDeckLimit != 5 {
		t.Fatalf("unexpected limits: %+v", cfg.Rules)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	again, err := LoadFile(path, false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.HTTP.ExportTimeout.Duration != 60*time.Second {
		t.Fatalf("export timeout = %v", again.HTTP.ExportTimeout)
	}
	if again.Rules.ExclusiveAvatar.Symbol != cfg.Rules.ExclusiveAvatar.Symbol {
		t.Fatalf("exclusive avatar symbol lost on round trip")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
api_url = "http://cards.local:9000"

[redis]
addr = "localhost:6379"
ttl = "90s"

[rules]
main_deck_limit = 40
life_card_routing = "reject"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path, false)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.APIURL != "http://cards.local:9000" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.Redis.TTL.Duration != 90*time.Second {
		t.Errorf("ttl = %v", cfg.Redis.TTL)
	}
	r := cfg.DeckRules()
	if r.MainDeckLimit != 40 {
		t.Errorf("main limit = %d", r.MainDeckLimit)
	}
	if r.LifeDeckLimit != 5 {
		t.Errorf("life limit should keep default, got %d", r.LifeDeckLimit)
	}
	if cfg.Routing() != session.RouteReject {
		t.Errorf("routing = %q", cfg.Routing())
	}
}

func TestLoadFileRejectsUnknownRouting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[rules]\nlife_card_routing = \"sideways\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, false); err == nil {
		t.Fatal("expected error for unknown routing")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://10.0.0.2:8000")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvRedisAddr, "redis:6379")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.APIURL != "http://10.0.0.2:8000" || cfg.Listen != ":9090" || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestConfigPathFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "deckbuilder", "config.toml")
	if got := GetConfigFilePath(); got != want {
		t.Fatalf("GetConfigFilePath() = %q, want %q", got, want)
	}
}
