package config

import (
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

var (
	ErrMissingTokenKey      = errors.New("TOKEN_KEY must be set")
	ErrMissingModerationKey = errors.New("BAD_WORDS_API_KEY must be set")
)

// Config is built once at startup and passed by value to constructors.
type Config struct {
	Port        string        `koanf:"port"`
	Env         string        `koanf:"env"`
	DatabaseDSN string        `koanf:"database_dsn"`
	TokenKey    string        `koanf:"token_key"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	LogLevel    string        `koanf:"log_level"`
	LogFormat   string        `koanf:"log_format"`

	BadWordsURL     string        `koanf:"bad_words_url"`
	BadWordsAPIKey  string        `koanf:"bad_words_api_key"`
	BadWordsTimeout time.Duration `koanf:"bad_words_timeout"`
	BadWordsRPS     float64       `koanf:"bad_words_rps"`
}

var defaults = map[string]any{
	"port":              "8080",
	"env":               "development",
	"database_dsn":      "root:password@tcp(127.0.0.1:3306)/qaforum?parseTime=true",
	"token_ttl":         "24h",
	"log_level":         "info",
	"log_format":        "json",
	"bad_words_url":     "https://api.apilayer.com",
	"bad_words_timeout": "10s",
	"bad_words_rps":     0,
}

// Load reads defaults, then the YAML file at path when path is not empty,
// then environment variables such as PORT or TOKEN_KEY. Later sources win.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return Config{}, errors.Wrapf(err, "set default %s", key)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, v string) (string, any) {
			key = strings.ToLower(key)
			if _, ok := defaults[key]; !ok && !isSecret(key) {
				return "", nil
			}
			return key, v
		},
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load env variables failed")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config failed")
	}

	if cfg.TokenKey == "" {
		return Config{}, ErrMissingTokenKey
	}
	if cfg.BadWordsAPIKey == "" {
		return Config{}, ErrMissingModerationKey
	}

	return cfg, nil
}

func isSecret(key string) bool {
	return key == "token_key" || key == "bad_words_api_key"
}
