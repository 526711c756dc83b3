package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type ProviderConfig struct {
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"baseURL"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Providers struct {
		Default         string         `mapstructure:"default"`
		CredentialsFile string         `mapstructure:"credentialsFile"`
		RequestTimeout  time.Duration  `mapstructure:"requestTimeout"`
		Gemini          ProviderConfig `mapstructure:"gemini"`
		OpenAI          ProviderConfig `mapstructure:"openai"`
		Grok            ProviderConfig `mapstructure:"grok"`
		Retry           struct {
			MaxAttempts  int           `mapstructure:"maxAttempts"`
			InitialDelay time.Duration `mapstructure:"initialDelay"`
		} `mapstructure:"retry"`
	} `mapstructure:"providers"`
	Cache struct {
		Backend string        `mapstructure:"backend"` // memory | redis | sqlite | postgres
		TTL     time.Duration `mapstructure:"ttl"`
		Prefix  string        `mapstructure:"prefix"`
		SQLite  struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"sqlite"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Enrichment struct {
		LookupTimeout    time.Duration `mapstructure:"lookupTimeout"`
		ImageMemoTTL     time.Duration `mapstructure:"imageMemoTTL"`
		WikipediaURL     string        `mapstructure:"wikipediaURL"`
		GeocodingURL     string        `mapstructure:"geocodingURL"`
		AirQualityURL    string        `mapstructure:"airQualityURL"`
		CustomSearchURL  string        `mapstructure:"customSearchURL"`
		GoogleSearchKey  string        `mapstructure:"googleSearchKey"`
		GoogleCX         string        `mapstructure:"googleCX"`
		GoogleMapsAPIKey string        `mapstructure:"googleMapsAPIKey"`
	} `mapstructure:"enrichment"`
	Observability struct {
		MetricsPort   string `mapstructure:"metricsPort"`
		StdoutTracing bool   `mapstructure:"stdoutTracing"`
	} `mapstructure:"observability"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets and per-deployment overrides come from the environment,
	// e.g. ENRICHMENT_GOOGLESEARCHKEY or CACHE_BACKEND.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}

// bindEnv maps the conventional variable names onto config keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("enrichment.googleSearchKey", "GOOGLE_SEARCH_API_KEY")
	_ = v.BindEnv("enrichment.googleCX", "GOOGLE_CX")
	_ = v.BindEnv("enrichment.googleMapsAPIKey", "GOOGLE_MAPS_API_KEY")
	_ = v.BindEnv("providers.default", "LLM_PROVIDER")
	_ = v.BindEnv("cache.redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("cache.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("repositories.postgres.password", "POSTGRES_PASSWORD")
}
