package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeevte/PurchaseReport/internal/config"
)

func TestPostgresDSN_EscapesCredentials(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		User:     "report",
		Password: "p@ss/word",
		Host:     "db.local",
		Port:     "5433",
		DBName:   "purchases",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.local:5433", u.Host)
	assert.Equal(t, "/purchases", u.Path)
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss/word", pass)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestMongoURI_PrefersExplicitURI(t *testing.T) {
	got := MongoURI(config.MongoConfig{URI: "mongodb://localhost:27017", Host: "ignored"})
	assert.Equal(t, "mongodb://localhost:27017", got)
}

func TestMongoURI_FromParts(t *testing.T) {
	got := MongoURI(config.MongoConfig{
		Username: "alice",
		Password: "pa:ss",
		Host:     "cluster0.example.net",
		AppName:  "Cluster0",
	})

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "mongodb+srv", u.Scheme)
	assert.Equal(t, "cluster0.example.net", u.Host)
	assert.Equal(t, "alice", u.User.Username())
	pass, _ := u.User.Password()
	assert.Equal(t, "pa:ss", pass)
	assert.Equal(t, "true", u.Query().Get("retryWrites"))
	assert.Equal(t, "majority", u.Query().Get("w"))
	assert.Equal(t, "Cluster0", u.Query().Get("appName"))
}
