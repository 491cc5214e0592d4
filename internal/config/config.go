package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/session"
)

// Environment variables that override the config file.
const (
	EnvAPIURL    = "DECKBUILDER_API_URL"
	EnvPort      = "PORT"
	EnvRedisAddr = "DECKBUILDER_REDIS_ADDR"
)

// Config represents the application configuration
type Config struct {
	APIURL string `toml:"api_url"`
	Listen string `toml:"listen"`
	// DataDir, when set, replaces the card service with cards.csv files.
	DataDir   string      `toml:"data_dir"`
	OutputDir string      `toml:"output_dir"`
	Debug     bool        `toml:"debug"`
	Redis     RedisConfig `toml:"redis"`
	HTTP      HTTPConfig  `toml:"http"`
	Rules     RulesConfig `toml:"rules"`
}

// RedisConfig enables the catalog cache when Addr is set.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      Duration `toml:"ttl"`
}

// HTTPConfig bounds outbound requests.
type HTTPConfig struct {
	CatalogTimeout Duration `toml:"catalog_timeout"`
	ExportTimeout  Duration `toml:"export_timeout"`
}

// RulesConfig mirrors deck.Rules plus the gallery pick policy.
type RulesConfig struct {
	MainDeckLimit             int                 `toml:"main_deck_limit"`
	LifeDeckLimit             int                 `toml:"life_deck_limit"`
	DefaultCopyLimit          int                 `toml:"default_copy_limit"`
	LifeMarker                string              `toml:"life_marker"`
	ExclusiveRestrictionTypes []string            `toml:"exclusive_restriction_types"`
	LifeCardRouting           string              `toml:"life_card_routing"`
	ExclusiveAvatar           ExclusiveAvatarConf `toml:"exclusive_avatar"`
}

// ExclusiveAvatarConf configures the exclusive-avatar guard.
type ExclusiveAvatarConf struct {
	RuleName   string `toml:"rule_name"`
	Symbol     string `toml:"symbol"`
	AvatarType string `toml:"avatar_type"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	r := deck.DefaultRules()
	return &Config{
		APIURL:    cards.DefaultBaseURL,
		Listen:    ":8080",
		OutputDir: "output",
		Redis: RedisConfig{
			TTL: Duration{10 * time.Minute},
		},
		HTTP: HTTPConfig{
			CatalogTimeout: Duration{12 * time.Second},
			ExportTimeout:  Duration{60 * time.Second},
		},
		Rules: RulesConfig{
			MainDeckLimit:             r.MainDeckLimit,
			LifeDeckLimit:             r.LifeDeckLimit,
			DefaultCopyLimit:          r.DefaultCopyLimit,
			LifeMarker:                r.LifeMarker,
			ExclusiveRestrictionTypes: r.ExclusiveRestrictionTypes,
			LifeCardRouting:           string(session.RouteRedirect),
			ExclusiveAvatar: ExclusiveAvatarConf{
				RuleName:   r.ExclusiveAvatar.RuleName,
				Symbol:     r.ExclusiveAvatar.Symbol,
				AvatarType: r.ExclusiveAvatar.AvatarType,
			},
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckbuilder", "config.toml")
}

// Load reads .env, the config file at the default path (creating it when
// missing) and then the environment overrides.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	cfg, err := LoadFile(GetConfigFilePath(), true)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile decodes path over the defaults. With create set, a missing file
// is written out with the defaults.
func LoadFile(path string, create bool) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if create {
			if err := writeConfig(path, cfg); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if _, err := session.ParseRouting(cfg.Rules.LifeCardRouting); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ApplyEnv overrides file values with the process environment.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		c.Listen = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisAddr)); v != "" {
		c.Redis.Addr = v
	}
}

// DeckRules converts the [rules] table.
func (c *Config) DeckRules() deck.Rules {
	r := c.Rules
	return deck.Rules{
		MainDeckLimit:             r.MainDeckLimit,
		LifeDeckLimit:             r.LifeDeckLimit,
		DefaultCopyLimit:          r.DefaultCopyLimit,
		LifeMarker:                r.LifeMarker,
		ExclusiveRestrictionTypes: append([]string(nil), r.ExclusiveRestrictionTypes...),
		ExclusiveAvatar: deck.ExclusiveAvatarRule{
			RuleName:   r.ExclusiveAvatar.RuleName,
			Symbol:     r.ExclusiveAvatar.Symbol,
			AvatarType: r.ExclusiveAvatar.AvatarType,
		},
	}
}

// Routing returns the life-card pick policy. LoadFile has already
// validated it, so an unknown value falls back to redirect.
func (c *Config) Routing() session.Routing {
	r, err := session.ParseRouting(c.Rules.LifeCardRouting)
	if err != nil {
		return session.RouteRedirect
	}
	return r
}
