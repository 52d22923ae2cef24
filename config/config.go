/* config.go
 * Contains the runtime settings of the bot and the shell. Settings are read from .env files, an optional yaml file
 * and the environment, in that order of increasing priority. Command line flags are applied on top by cmd
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// Environment variables that override the config file
const (
	EnvDataFile   = "BRACKET_DATA_FILE"
	EnvLogLevel   = "BRACKET_LOG_LEVEL"
	EnvFetchRPS   = "BRACKET_FETCH_RPS"
	EnvWatch      = "BRACKET_WATCH"
	EnvProdToken  = "DISCORD_PROD_TOKEN"
	EnvBetaToken  = "DISCORD_BETA_TOKEN"
	EnvWebhook    = "BRACKET_WEBHOOK_ADDR"
	EnvHookToken  = "BRACKET_WEBHOOK_TOKEN"
	EnvHookBase   = "BRACKET_WEBHOOK_BASE_URL"
	DefaultLevel  = "warn"
	DefaultRPS    = 1.0
	DefaultFetchS = 30
	DefaultCacheM = 10
)

type Config struct {
	// DataFile is the tournament results CSV. Empty means the embedded sample tournament
	DataFile         string  `yaml:"data_file"`
	LogLevel         string  `yaml:"log_level"`
	DiscordProdToken string  `yaml:"discord_prod_token"`
	DiscordBetaToken string  `yaml:"discord_beta_token"`
	FetchRPS         float64 `yaml:"fetch_rps"`
	FetchTimeoutSecs int     `yaml:"fetch_timeout_seconds"`
	// PredictionCacheMins keeps downloaded prediction files this long. 0 disables the cache
	PredictionCacheMins int `yaml:"prediction_cache_minutes"`
	// Watch reloads DataFile while the bot runs
	Watch bool `yaml:"watch"`
	// WebhookAddr starts the results webhook server when set, e.g. ":8080"
	WebhookAddr    string `yaml:"webhook_addr"`
	WebhookToken   string `yaml:"webhook_token"`
	WebhookBaseURL string `yaml:"webhook_base_url"`
}

func Default() Config {
	return Config{
		LogLevel:            DefaultLevel,
		FetchRPS:            DefaultRPS,
		FetchTimeoutSecs:    DefaultFetchS,
		PredictionCacheMins: DefaultCacheM,
	}
}

// LoadEnvFiles loads .env files into the environment. Missing files are not an error
func LoadEnvFiles() {
	env := os.Getenv("BRACKET_ENV")
	if env == "" {
		env = "development"
	}

	godotenv.Load(".env." + env + ".local")
	godotenv.Load(".env." + env)
	godotenv.Load()
}

// Load builds the config from the defaults, the yaml file at path if path is not empty, and the environment
// Preconditions: .env files have been loaded with LoadEnvFiles if they are wanted
// Postconditions: Returns the validated config, or an error if the file could not be read or a value is invalid
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config from %q: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
			return Config{}, fmt.Errorf("failed to parse config from %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataFile); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvProdToken); v != "" {
		c.DiscordProdToken = v
	}
	if v := os.Getenv(EnvBetaToken); v != "" {
		c.DiscordBetaToken = v
	}
	if v := os.Getenv(EnvWebhook); v != "" {
		c.WebhookAddr = v
	}
	if v := os.Getenv(EnvHookToken); v != "" {
		c.WebhookToken = v
	}
	if v := os.Getenv(EnvHookBase); v != "" {
		c.WebhookBaseURL = v
	}
	if v := os.Getenv(EnvFetchRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvFetchRPS, v, err)
		}
		c.FetchRPS = rps
	}
	if v := os.Getenv(EnvWatch); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWatch, v, err)
		}
		c.Watch = watch
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.FetchRPS <= 0 {
		return fmt.Errorf("fetch_rps must be positive, got %v", c.FetchRPS)
	}
	if c.FetchTimeoutSecs <= 0 {
		return fmt.Errorf("fetch_timeout_seconds must be positive, got %d", c.FetchTimeoutSecs)
	}
	if c.PredictionCacheMins < 0 {
		return fmt.Errorf("prediction_cache_minutes must not be negative, got %d", c.PredictionCacheMins)
	}
	if c.Watch && c.DataFile == "" {
		return fmt.Errorf("watch needs a data_file")
	}
	if c.WebhookAddr != "" && c.WebhookBaseURL == "" {
		return fmt.Errorf("webhook_addr needs a webhook_base_url")
	}
	return nil
}

// Token returns the discord token of the beta bot when test is set, else of the production bot
func (c Config) Token(test bool) string {
	if test {
		return c.DiscordBetaToken
	}
	return c.DiscordProdToken
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

func (c Config) PredictionCacheTTL() time.Duration {
	return time.Duration(c.PredictionCacheMins) * time.Minute
}

// SetupLogging applies the configured level and sends log output to stderr so it stays out of the shell
func (c Config) SetupLogging() {
	level, err := log.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		level = log.WarnLevel
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
