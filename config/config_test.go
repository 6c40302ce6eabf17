package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "flights.txt", cfg.Storage.Flights)
	assert.Equal(t, "users.txt", cfg.Storage.Users)
	assert.Equal(t, "passengers.txt", cfg.Storage.Passengers)
	assert.Equal(t, "file", cfg.Log.Output)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
admin:
  username: root
  password: secret
storage:
  backend: redis
  flights: f.json
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  booking_events_topic: bookings
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "secret", cfg.Admin.Password)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "f.json", cfg.Storage.Flights)
	assert.Equal(t, "users.txt", cfg.Storage.Users)
	assert.Equal(t, "airdesk:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "storage: [\n"},
		{name: "unknown backend", body: "storage:\n  backend: sqlite\n"},
		{name: "redis without addr", body: "storage:\n  backend: redis\n"},
		{name: "postgres without host", body: "storage:\n  backend: postgres\n"},
	}

	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "c"+string(rune('a'+i))+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			cfg, err := LoadConfig(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "air", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=air sslmode=disable", d.DSN())
}
