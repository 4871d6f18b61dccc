package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "HOOKPROBE"

type Config struct {
	Target  TargetConfig  `mapstructure:"target"`
	Secret  SecretConfig  `mapstructure:"secret"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type TargetConfig struct {
	URL         string `mapstructure:"url"`
	PayloadPath string `mapstructure:"payload_path"`
}

type SecretConfig struct {
	// Source is one of static, env or aws.
	Source string    `mapstructure:"source"`
	Value  string    `mapstructure:"value"`
	EnvVar string    `mapstructure:"env_var"`
	AWS    AWSConfig `mapstructure:"aws"`
}

type AWSConfig struct {
	Region   string `mapstructure:"region"`
	SecretID string `mapstructure:"secret_id"`
	JSONKey  string `mapstructure:"json_key"`
}

type HTTPConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	MaxResponseBody int64         `mapstructure:"max_response_body"`
}

type HistoryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target.url", "http://localhost:8080")
	v.SetDefault("target.payload_path", "")

	v.SetDefault("secret.source", "env")
	v.SetDefault("secret.value", "")
	v.SetDefault("secret.env_var", "HOOKPROBE_WEBHOOK_SECRET")
	v.SetDefault("secret.aws.region", "us-east-1")
	v.SetDefault("secret.aws.secret_id", "webhooks/secret")
	v.SetDefault("secret.aws.json_key", "webhooks_secret")

	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("http.user_agent", "hookprobe/1.0")
	v.SetDefault("http.max_response_body", 64<<10)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "data/hookprobe.db")
	v.SetDefault("history.max_connections", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.file_path", "")
}

// Load reads the optional .env file and config file, then applies
// HOOKPROBE_* environment overrides. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
