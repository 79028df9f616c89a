package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration. Provider credentials are injected
// here once at load time; engines receive the config at construction and
// treat a missing credential as an explicit configuration error.
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	OpenAI      OpenAIConfig     `mapstructure:"openai"`
	Unsplash    UnsplashConfig   `mapstructure:"unsplash"`
	Pexels      PexelsConfig     `mapstructure:"pexels"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Cache       CacheConfig      `mapstructure:"cache"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Generation  GenerationConfig `mapstructure:"generation"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds the content store connection settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// OpenAIConfig holds the language-model provider settings.
type OpenAIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// UnsplashConfig holds the primary stock-photo provider credential.
type UnsplashConfig struct {
	AccessKey string `mapstructure:"access_key"`
}

// PexelsConfig holds the secondary stock-photo provider credential.
type PexelsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AuthConfig holds the token verification secret. Token issuance is handled
// by the identity service, not here.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// CacheConfig holds the optional Redis completion cache settings.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds request rate limit settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// GenerationConfig holds the generation pipeline timeouts and tunables.
type GenerationConfig struct {
	RecipeTimeout time.Duration `mapstructure:"recipe_timeout"`
	MenuTimeout   time.Duration `mapstructure:"menu_timeout"`
	// FuzzyThreshold is the minimum word-overlap ratio for resolving a
	// section recipe name to an existing record.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
}

// LoadConfig loads the configuration from the environment and .env file.
func LoadConfig() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("openai.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("unsplash.access_key", "UNSPLASH_ACCESS_KEY")
	viper.BindEnv("pexels.api_key", "PEXELS_API_KEY")
	viper.BindEnv("auth.secret", "AUTH_SECRET")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.addr", "CACHE_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	fmt.Println("Loading configuration",
		"openai_api_key:", MaskAPIKey(viper.GetString("openai.api_key")),
		"openai_model:", viper.GetString("openai.model"),
	)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey masks a credential for logging, keeping the first and last
// four characters.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "tariften-backend")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("database.path", "tariften.db")

	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.max_tokens", 2500)
	viper.SetDefault("openai.timeout", "60s")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("generation.recipe_timeout", "120s")
	viper.SetDefault("generation.menu_timeout", "240s")
	viper.SetDefault("generation.fuzzy_threshold", 0.6)

	viper.SetDefault("dedup_window", "1s")
	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Enabled {
		if config.Cache.Addr == "" {
			return fmt.Errorf("cache addr is required when cache is enabled")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.Generation.FuzzyThreshold <= 0 || config.Generation.FuzzyThreshold > 1 {
		return fmt.Errorf("invalid fuzzy threshold")
	}

	return nil
}
