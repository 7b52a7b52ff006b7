package database

import (
	"net/url"

	"github.com/valeevte/PurchaseReport/internal/config"
)

// PostgresDSN создаёт корректный DSN (URL encoded)
func PostgresDSN(c config.PostgresConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.DBName,
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MongoURI возвращает c.URI, если он задан, иначе собирает строку
// подключения из логина, пароля и хоста.
func MongoURI(c config.MongoConfig) string {
	if c.URI != "" {
		return c.URI
	}
	scheme := c.Scheme
	if scheme == "" {
		scheme = "mongodb+srv"
	}
	u := &url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host,
		Path:   "/",
	}
	q := u.Query()
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if c.AppName != "" {
		q.Set("appName", c.AppName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
