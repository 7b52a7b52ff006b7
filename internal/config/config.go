// Package config загружает настройки сервиса: значения по умолчанию,
// затем необязательный YAML-файл, затем переменные окружения.
package config

import (
	"time"
)

// Config: корневая конфигурация
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Store     StoreConfig     `koanf:"store"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Postgres  PostgresConfig  `koanf:"postgres"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// GinMode: debug, release, test
	GinMode string `koanf:"gin_mode" validate:"omitempty,oneof=debug release test"`
}

// UpstreamConfig: удалённый источник JSON-массива покупок
type UpstreamConfig struct {
	URL     string        `koanf:"url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// StoreConfig выбирает хранилище: mongo, postgres или memory.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
}

// MongoConfig: либо готовый URI, либо логин/пароль/хост.
type MongoConfig struct {
	URI        string        `koanf:"uri"`
	Scheme     string        `koanf:"scheme" validate:"omitempty,oneof=mongodb mongodb+srv"`
	Username   string        `koanf:"username"`
	Password   string        `koanf:"password"`
	Host       string        `koanf:"host"`
	AppName    string        `koanf:"app_name"`
	Database   string        `koanf:"database" validate:"required"`
	Collection string        `koanf:"collection" validate:"required"`
	Timeout    time.Duration `koanf:"connect_timeout" validate:"gt=0"`

	// Transactions: замена набора в транзакции (требует replica set)
	Transactions bool `koanf:"transactions"`
}

type PostgresConfig struct {
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// SchedulerConfig: Interval == 0 отключает периодическую перезагрузку.
type SchedulerConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gte=0"`
}

type SecurityConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// DefaultUpstreamURL: исходный мок-файл с покупками
const DefaultUpstreamURL = "https://raw.githubusercontent.com/Bit-Code-Technologies/mockapi/main/purchase.json"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ShutdownTimeout: 15 * time.Second,
		},
		Upstream: UpstreamConfig{
			URL:     DefaultUpstreamURL,
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{Driver: "mongo"},
		Mongo: MongoConfig{
			Scheme:       "mongodb+srv",
			AppName:      "Cluster0",
			Database:     "store",
			Collection:   "products",
			Timeout:      10 * time.Second,
			Transactions: true,
		},
		Postgres: PostgresConfig{
			Port:    "5432",
			SSLMode: "disable",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   0,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
