package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar переопределяет путь к YAML-файлу
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// envMappings: переменная окружения (lowercase) -> путь koanf.
// USER_NAME/USER_PASS оставлены ради совместимости со старым .env.
var envMappings = map[string]string{
	"port":             "server.port",
	"shutdown_timeout": "server.shutdown_timeout",
	"gin_mode":         "server.gin_mode",

	"upstream_url":     "upstream.url",
	"upstream_timeout": "upstream.timeout",

	"store_driver": "store.driver",

	"mongo_uri":             "mongo.uri",
	"mongo_scheme":          "mongo.scheme",
	"user_name":             "mongo.username",
	"user_pass":             "mongo.password",
	"mongo_username":        "mongo.username",
	"mongo_password":        "mongo.password",
	"mongo_host":            "mongo.host",
	"mongo_app_name":        "mongo.app_name",
	"mongo_database":        "mongo.database",
	"mongo_collection":      "mongo.collection",
	"mongo_connect_timeout": "mongo.connect_timeout",
	"mongo_transactions":    "mongo.transactions",

	"db_user":     "postgres.user",
	"db_password": "postgres.password",
	"db_host":     "postgres.host",
	"db_port":     "postgres.port",
	"db_name":     "postgres.dbname",
	"db_sslmode":  "postgres.sslmode",

	"refresh_interval": "scheduler.interval",

	"cors_origins":      "security.cors_origins",
	"rate_limit_reqs":   "security.rate_limit_reqs",
	"rate_limit_window": "security.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load собирает конфигурацию: defaults -> YAML (если найден) -> env.
// Результат проверяется через Validate.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitListFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// listFields приходят из env строкой "a,b,c".
var listFields = []string{"security.cors_origins"}

func splitListFields(k *koanf.Koanf) error {
	for _, path := range listFields {
		str, ok := k.Get(path).(string)
		if !ok || str == "" {
			continue
		}
		parts := make([]string, 0, strings.Count(str, ",")+1)
		for _, p := range strings.Split(str, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
