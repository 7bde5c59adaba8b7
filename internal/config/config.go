package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/spf13/viper"
)

// Config is the full, immutable application configuration. It is constructed
// once at process start and passed by reference; nothing mutates it afterwards.
type Config struct {
	Server    ServerConfig         `mapstructure:"server"`
	Auth      AuthConfig           `mapstructure:"auth"`
	CORS      CORSConfig           `mapstructure:"cors"`
	Store     StoreConfig          `mapstructure:"store"`
	Providers []llm.ProviderConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// AuthConfig is the placeholder fixed-credential gate. It is a boolean gate,
// not a security boundary; a real identity provider replaces it separately.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Required bool   `mapstructure:"required"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StoreConfig struct {
	DSN     string `mapstructure:"dsn"`
	Enabled bool   `mapstructure:"enabled"`
}

// Provider returns the configuration for the given provider type, or false if
// none is configured. A configured provider with an empty APIKey is a valid
// state, surfaced per-request as a configuration error by the gateway.
func (c *Config) Provider(providerType string) (llm.ProviderConfig, bool) {
	for _, p := range c.Providers {
		if strings.EqualFold(p.Type, providerType) {
			return p, true
		}
	}
	return llm.ProviderConfig{}, false
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("auth.username", "user")
	v.SetDefault("auth.password", "password123")
	v.SetDefault("auth.required", false)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.dsn", "file:homework.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000")

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Older deployments set APP_USERNAME / APP_PASSWORD
	_ = v.BindEnv("auth.username", "APP_USERNAME", "AUTH_USERNAME")
	_ = v.BindEnv("auth.password", "APP_PASSWORD", "AUTH_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if len(cfg.Providers) == 0 {
		cfg.Providers = defaultProviders()
	}

	// Resolve API Keys
	for i, p := range cfg.Providers {
		if strings.HasPrefix(p.APIKey, "ENV:") {
			envVar := strings.TrimPrefix(p.APIKey, "ENV:")
			// Check process environment first (explicit override)
			val := os.Getenv(envVar)
			if val == "" {
				// Then check viper (which might have it from other sources)
				val = v.GetString(envVar)
			}
			cfg.Providers[i].APIKey = val
		}
	}

	return &cfg, nil
}

// defaultProviders wires the two supported upstreams when no providers section
// is present. Keys resolve from the environment; absence means the provider is
// unavailable, not a startup failure.
func defaultProviders() []llm.ProviderConfig {
	return []llm.ProviderConfig{
		{
			ID:     "gemini-main",
			Type:   "gemini",
			Name:   "Google Gemini",
			APIKey: "ENV:GEMINI_API_KEY",
		},
		{
			ID:     "llama-main",
			Type:   "llama",
			Name:   "Llama (Groq)",
			APIKey: "ENV:LLAMA_API_KEY",
		},
	}
}
