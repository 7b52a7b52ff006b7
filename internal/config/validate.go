package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет теги и зависимости между секциями.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" && c.Mongo.Host == "" {
			return errors.New("mongo: either MONGO_URI or MONGO_HOST must be set")
		}
		if c.Mongo.URI == "" && c.Mongo.Username == "" {
			return errors.New("mongo: USER_NAME must be set when MONGO_URI is empty")
		}
	case "postgres":
		if c.Postgres.User == "" || c.Postgres.Host == "" || c.Postgres.Port == "" || c.Postgres.DBName == "" {
			return errors.New("postgres: DB_USER/DB_HOST/DB_PORT/DB_NAME must be set")
		}
	}

	if c.Security.RateLimitReqs > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security: rate_limit_window must be positive when rate_limit_reqs=%d", c.Security.RateLimitReqs)
	}
	return nil
}
