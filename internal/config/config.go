package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// HTTP front door
	HTTPAddress string

	// External service credentials and endpoints
	NaverClientID     string
	NaverClientSecret string
	SearchEndpoint    string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string

	// Pipeline tuning
	BatchSize      int
	Concurrency    int
	BatchDelayMS   int
	MinWindow      int
	MaxWindow      int
	FuzzyThreshold float64

	// Category reference data
	ReferencePath string
	CacheDir      string
	CacheTTLDays  int
}

func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMS) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLDays) * 24 * time.Hour
}

// Load reads configuration from the config file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":       "HTTP_ADDRESS",
		"NaverClientID":     "NAVER_CLIENT_ID",
		"NaverClientSecret": "NAVER_CLIENT_SECRET",
		"SearchEndpoint":    "SEARCH_ENDPOINT",
		"OpenAIAPIKey":      "OPENAI_API_KEY",
		"OpenAIModel":       "OPENAI_MODEL",
		"OpenAIBaseURL":     "OPENAI_BASE_URL",
		"BatchSize":         "BATCH_SIZE",
		"Concurrency":       "CONCURRENCY",
		"BatchDelayMS":      "BATCH_DELAY_MS",
		"MinWindow":         "MIN_WINDOW",
		"MaxWindow":         "MAX_WINDOW",
		"FuzzyThreshold":    "FUZZY_THRESHOLD",
		"ReferencePath":     "CATEGORY_REFERENCE_PATH",
		"CacheDir":          "CACHE_DIR",
		"CacheTTLDays":      "CACHE_TTL_DAYS",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("sellerkit_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.sellerkit")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	warnMissingCredentials(&config)

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8082")
	v.SetDefault("BatchSize", 10)
	v.SetDefault("Concurrency", 5)
	v.SetDefault("BatchDelayMS", 500)
	v.SetDefault("MinWindow", 3)
	v.SetDefault("MaxWindow", 5)
	v.SetDefault("FuzzyThreshold", 0.7)
	v.SetDefault("OpenAIModel", "gpt-4o-mini")
	v.SetDefault("CacheDir", ".cache")
	v.SetDefault("CacheTTLDays", 7)
}

// warnMissingCredentials lists unset external-service credentials. Runs
// without them still work, every adapter call just takes its local fallback.
func warnMissingCredentials(config *Config) {
	var missing []string

	if config.NaverClientID == "" {
		missing = append(missing, "NAVER_CLIENT_ID")
	}
	if config.NaverClientSecret == "" {
		missing = append(missing, "NAVER_CLIENT_SECRET")
	}
	if config.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}

	if len(missing) > 0 {
		log.Warn().Msgf("Missing credentials (%s): external calls will use local fallbacks", strings.Join(missing, ", "))
	}
}
