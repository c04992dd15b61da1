// Package config loads runtime settings from an optional config file, a
// .env file and LINGUACAST_* environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "LINGUACAST"

var (
	TranslationProviders = []string{"googleweb", "google", "mymemory", "ollama", "openrouter", "systran"}
	SpeechProviders      = []string{"google", "openai"}
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Translation TranslationConfig `mapstructure:"translation"`
	Speech      SpeechConfig      `mapstructure:"speech"`
}

type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	BodyLimitMB     int           `mapstructure:"body_limit_mb"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type TranslationConfig struct {
	Provider   string           `mapstructure:"provider"`
	Google     GoogleConfig     `mapstructure:"google"`
	MyMemory   MyMemoryConfig   `mapstructure:"mymemory"`
	Ollama     OllamaConfig     `mapstructure:"ollama"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Systran    SystranConfig    `mapstructure:"systran"`
}

type GoogleConfig struct {
	Credentials string `mapstructure:"credentials"`
	APIKey      string `mapstructure:"api_key"`
}

type MyMemoryConfig struct {
	Email string `mapstructure:"email"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type SystranConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type SpeechConfig struct {
	Provider string             `mapstructure:"provider"`
	Google   GoogleSpeechConfig `mapstructure:"google"`
	OpenAI   OpenAISpeechConfig `mapstructure:"openai"`
}

type GoogleSpeechConfig struct {
	TLD     string `mapstructure:"tld"`
	Slow    bool   `mapstructure:"slow"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenAISpeechConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Voice   string `mapstructure:"voice"`
}

type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load returns the merged configuration. Precedence, highest first:
// environment, config file, defaults.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	explicitFile := false
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		explicitFile = true
	} else if cfg := os.Getenv(envPrefix + "_CONFIG_FILE"); cfg != "" {
		v.SetConfigFile(cfg)
		explicitFile = true
	}

	if !explicitFile {
		v.SetConfigName("linguacast")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(timeStringToDurationHook())); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes provider names and rejects values the server cannot
// start with.
func (c *Config) Validate() error {
	c.Translation.Provider = strings.ToLower(strings.TrimSpace(c.Translation.Provider))
	c.Speech.Provider = strings.ToLower(strings.TrimSpace(c.Speech.Provider))

	if !contains(TranslationProviders, c.Translation.Provider) {
		return fmt.Errorf("translation.provider %q is not one of %s",
			c.Translation.Provider, strings.Join(TranslationProviders, ", "))
	}
	if !contains(SpeechProviders, c.Speech.Provider) {
		return fmt.Errorf("speech.provider %q is not one of %s",
			c.Speech.Provider, strings.Join(SpeechProviders, ", "))
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("server.body_limit_mb must be > 0")
	}
	if c.Server.ProviderTimeout < 0 {
		return fmt.Errorf("server.provider_timeout must be >= 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", ":5000")
	v.SetDefault("server.body_limit_mb", 4)
	v.SetDefault("server.provider_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("translation.provider", "googleweb")
	v.SetDefault("translation.google.credentials", "")
	v.SetDefault("translation.google.api_key", "")
	v.SetDefault("translation.mymemory.email", "")
	v.SetDefault("translation.ollama.base_url", "http://localhost:11434")
	v.SetDefault("translation.ollama.model", "llama3.2")
	v.SetDefault("translation.openrouter.api_key", "")
	v.SetDefault("translation.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("translation.openrouter.model", "google/gemini-2.0-flash-exp:free")
	v.SetDefault("translation.systran.api_key", "")

	v.SetDefault("speech.provider", "google")
	v.SetDefault("speech.google.tld", "com")
	v.SetDefault("speech.google.slow", false)
	v.SetDefault("speech.google.base_url", "")
	v.SetDefault("speech.openai.api_key", "")
	v.SetDefault("speech.openai.base_url", "")
	v.SetDefault("speech.openai.model", "tts-1")
	v.SetDefault("speech.openai.voice", "alloy")
}

func timeStringToDurationHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case time.Duration:
			return v, nil
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, err
			}
			return d, nil
		default:
			// Bare numbers are nanoseconds; mapstructure converts them.
			return data, nil
		}
	}
}
