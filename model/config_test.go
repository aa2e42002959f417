package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/billingcat/clients/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := model.ParseConfig([]byte(`
[Servers.development]
Database = "sqlite3"
DBName = "clients.db"
`))
	require.NoError(t, err)

	assert.Equal(t, model.ModeDevelopment, cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "RU", cfg.DefaultRegion)
	assert.Equal(t, "1M", cfg.BodyLimit)
	assert.Equal(t, "clients.db", cfg.Server().DBName)
}

func TestParseConfig_Production(t *testing.T) {
	cfg, err := model.ParseConfig([]byte(`
Mode = "production"
Port = 9000
DefaultRegion = "de"

[Servers.production]
Database = "postgresql"
DBHost = "db"
DBName = "clients"
DBUser = "app"
DBPassword = "pw"
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "DE", cfg.DefaultRegion)
	svr := cfg.Server()
	assert.Equal(t, 5432, svr.DBPort)
	assert.Equal(t, "host=db user=app password=pw dbname=clients port=5432 sslmode=disable TimeZone=UTC", model.PostgresDSN(svr))
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       `Mode = `,
		"no server":    `Mode = "production"`,
		"bad database": "[Servers.development]\nDatabase = \"mysql\"\nDBName = \"x\"",
		"no db name":   "[Servers.development]\nDatabase = \"sqlite3\"",
		"bad port":     "Port = 70000\n[Servers.development]\nDatabase = \"sqlite3\"\nDBName = \"x\"",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := model.ParseConfig([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Servers.development]\nDatabase = \"sqlite3\"\nDBName = \"c.db\"\n"), 0o600))

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Server().Database)

	_, err = model.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestInitDatabase_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.db")
	cfg, err := model.ParseConfig([]byte("[Servers.development]\nDatabase = \"sqlite3\"\nDBLogger = \"silent\"\nDBName = \"" + filepath.ToSlash(path) + "\"\n"))
	require.NoError(t, err)

	store, err := model.InitDatabase(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "sqlite", store.Dialect())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
