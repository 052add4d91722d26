package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pixel-angler/constant"
)

// Content providers
const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
	ProviderNone   = "none"
)

// Credential environment variables, first non-empty wins
var apiKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

type Content struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	// APIKey is read from the environment only
	APIKey string `yaml:"-"`
}

type Audio struct {
	Enabled bool `yaml:"enabled"`
}

type Network struct {
	Enabled     bool   `yaml:"enabled"`
	Address     string `yaml:"address"`
	BroadcastHz int    `yaml:"broadcastHz"`
}

type Save struct {
	AppName string `yaml:"appName"`
	// Disabled keeps progress in memory only
	Disabled bool `yaml:"disabled"`
}

type Input struct {
	// HoldTimeout releases the space key when auto-repeat stops arriving
	HoldTimeout time.Duration `yaml:"holdTimeout"`
}

type Gear struct {
	// Catalog optionally replaces the embedded rod catalog
	Catalog string `yaml:"catalog"`
}

// Config is the application configuration
type Config struct {
	Content Content `yaml:"content"`
	Audio   Audio   `yaml:"audio"`
	Network Network `yaml:"network"`
	Save    Save    `yaml:"save"`
	Input   Input   `yaml:"input"`
	Gear    Gear    `yaml:"gear"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Content: Content{
			Provider: ProviderGemini,
			Model:    constant.DefaultContentModel,
			Timeout:  constant.ContentFetchTimeout,
		},
		Audio: Audio{Enabled: true},
		Network: Network{
			Address:     "127.0.0.1:8787",
			BroadcastHz: 15,
		},
		Save:  Save{AppName: "pixel_angler"},
		Input: Input{HoldTimeout: 550 * time.Millisecond},
	}
}

// Load overlays the YAML file at path on Default, then reads credentials
// An empty path skips the file; envFile may be missing
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	cfg.Content.APIKey = APIKey()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// APIKey returns the first configured credential
func APIKey() string {
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate rejects values the runtime cannot use
func (c Config) Validate() error {
	switch c.Content.Provider {
	case ProviderGemini, ProviderNone:
	case ProviderHTTP:
		if c.Content.Endpoint == "" {
			return fmt.Errorf("content provider %q requires an endpoint", ProviderHTTP)
		}
	default:
		return fmt.Errorf("unknown content provider %q", c.Content.Provider)
	}
	if c.Content.Timeout <= 0 {
		return fmt.Errorf("content timeout must be positive, got %v", c.Content.Timeout)
	}
	if c.Network.Enabled && c.Network.BroadcastHz <= 0 {
		return fmt.Errorf("network broadcastHz must be positive, got %d", c.Network.BroadcastHz)
	}
	if c.Input.HoldTimeout <= 0 {
		return fmt.Errorf("input holdTimeout must be positive, got %v", c.Input.HoldTimeout)
	}
	return nil
}

// BroadcastInterval converts BroadcastHz to a publish throttle
func (n Network) BroadcastInterval() time.Duration {
	if n.BroadcastHz <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(n.BroadcastHz)
}
