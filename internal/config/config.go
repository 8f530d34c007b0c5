// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	AppURL                  string `yaml:"app_url" env:"APP_URL"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
	Backend                 `yaml:"backend"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	HTTPServer              `yaml:"http_server"`
	Onboarding              `yaml:"onboarding"`
	Plans                   `yaml:"plans"`
	Functions               `yaml:"functions"`
	RateLimit               `yaml:"rate_limit"`
}

// Backend настройки подключения к backend-as-a-service (auth, functions).
type Backend struct {
	URL       string        `yaml:"url" env:"BACKEND_URL"`
	AnonKey   string        `yaml:"anon_key" env:"BACKEND_ANON_KEY"`
	JWTSecret string        `yaml:"jwt_secret" env:"BACKEND_JWT_SECRET"`
	Timeout   time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ настройки брокера для публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"loyalty.events"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Onboarding настройки мастера онбординга.
type Onboarding struct {
	ScopeTTL time.Duration `yaml:"scope_ttl" env-default:"30m"`
}

// Plans настройки каталога тарифов.
type Plans struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"1h"`
}

// Functions настройки прокси к edge-функциям.
type Functions struct {
	Public []string `yaml:"public"`
}

// RateLimit настройки ограничения частоты запросов на вход.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, прочитанный из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// IsPublicFunction сообщает, можно ли вызывать функцию без сессии.
func (c *Config) IsPublicFunction(name string) bool {
	for _, fn := range c.Functions.Public {
		if fn == name {
			return true
		}
	}
	return false
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"AppURL: %s\n"+
			"Backend:\n"+
			"  URL: %s\n"+
			"  Timeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Onboarding:\n"+
			"  ScopeTTL: %s\n",
		c.Env,
		c.AppURL,
		c.Backend.URL,
		c.Backend.Timeout,
		c.AddressRedis,
		c.DB,
		c.Exchange,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.ScopeTTL,
	)
}
