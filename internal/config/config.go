package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `env:"ENV" env-default:"local"`
	HTTP   HTTPConfig
	Search SearchConfig
}

type HTTPConfig struct {
	Address      string        `env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// SearchConfig — конфигурация разрешения тегов и обогащения батча.
type SearchConfig struct {
	// FuzzyThreshold — минимальная близость для нечёткого совпадения (0-1)
	FuzzyThreshold float64 `env:"TAG_FUZZY_THRESHOLD" env-default:"0.6"`
	// UseAliases — раскрывать поисковые термины через словарь алиасов
	UseAliases bool `env:"TAG_USE_ALIASES" env-default:"true"`
	// AddDerivedFields — добавлять производные поля (price_per_sqft) при обработке
	AddDerivedFields bool `env:"ADD_DERIVED_FIELDS" env-default:"true"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
