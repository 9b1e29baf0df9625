package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrInvalidDuration = errors.New("durations must be positive")

type Config struct {
	Token     string `yaml:"token" env:"DISCORD_TOKEN"`
	ClientID  string `yaml:"client-id" env:"CLIENT_ID"`
	GuildID   string `yaml:"guild-id" env:"GUILD_ID"`
	Prefix    string `yaml:"prefix" env:"BOT_PREFIX" env-default:"!"`
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"text"`

	Dictionary Dictionary `yaml:"dictionary"`
	Game       Game       `yaml:"game"`
}

type Dictionary struct {
	URL         string        `yaml:"url" env:"DICTIONARY_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en/"`
	Timeout     time.Duration `yaml:"timeout" env:"DICTIONARY_TIMEOUT" env-default:"5s"`
	WordsAPIKey string        `yaml:"words-api-key" env:"WORDS_API_KEY"`
	RedisAddr   string        `yaml:"redis-addr" env:"REDIS_ADDR"`
	CacheTTL    time.Duration `yaml:"cache-ttl" env:"CACHE_TTL" env-default:"24h"`
}

// Game holds the word-chain timings. The status displays count down from
// these same values.
type Game struct {
	JoinWindow   time.Duration `yaml:"join-window" env:"JOIN_WINDOW" env-default:"20s"`
	Duration     time.Duration `yaml:"duration" env:"GAME_DURATION" env-default:"2m"`
	TurnDuration time.Duration `yaml:"turn-duration" env:"TURN_DURATION" env-default:"40s"`
	CleanupDelay time.Duration `yaml:"cleanup-delay" env:"CLEANUP_DELAY" env-default:"30s"`
}

// Load reads an optional .env file, then the environment. When path is not
// empty the YAML file there is read as well, with the environment taking
// precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, conf)
	} else {
		err = cleanenv.ReadEnv(conf)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (that *Config) validate() error {
	durations := map[string]time.Duration{
		"dictionary timeout": that.Dictionary.Timeout,
		"join window":        that.Game.JoinWindow,
		"game duration":      that.Game.Duration,
		"turn duration":      that.Game.TurnDuration,
		"cleanup delay":      that.Game.CleanupDelay,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s is %s", ErrInvalidDuration, name, d)
		}
	}
	return nil
}
