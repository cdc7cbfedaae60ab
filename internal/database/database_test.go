package database

import (
	"io/fs"
	"net/url"
	"testing"
	"time"

	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "oed",
		Password:        "p@ss:w/rd",
		Name:            "oed",
		SSLMode:         "disable",
		MaxOpenConns:    8,
		MaxIdleConns:    2,
		ConnMaxLifetime: 300,
		ConnMaxIdleTime: 60,
	}
}

func TestDSN_EscapesPassword(t *testing.T) {
	dsn := DSN(testDBConfig())

	u, err := url.Parse(dsn)
	require.NoError(t, err)

	pw, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss:w/rd", pw)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/oed", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestPoolConfig(t *testing.T) {
	pc, err := PoolConfig(testDBConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 300*time.Second, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "p@ss:w/rd", pc.ConnConfig.Password)
}

func TestPoolConfig_MinConnsCapped(t *testing.T) {
	cfg := testDBConfig()
	cfg.MaxIdleConns = 50

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, pc.MaxConns, pc.MinConns)
}

func TestMigrations_Embedded(t *testing.T) {
	sub, err := Migrations()
	require.NoError(t, err)

	body, err := fs.ReadFile(sub, "001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TYPE user_type AS ENUM ('admin', 'obvius', 'csv')")
	assert.Contains(t, string(body), "users_email_key")
}
