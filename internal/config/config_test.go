package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
port = 5433
user = "salon"
password = "secret"
dbname = "salon"

[logs]
level = "debug"

[auth]
jwt_secret = "from-file"

[booking]
open_hour = 10
granularity_minutes = 15
weekdays_only = false

[redis]
url = "redis://cache:6379/0"
calendar_ttl = 120

[rate_limit]
enabled = true
store = "redis"
rate = "5-M"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "host=db port=5433 user=salon password=secret dbname=salon sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	policy := cfg.Booking.SlotPolicy()
	assert.Equal(t, 10, policy.OpenHour)
	assert.Equal(t, 15, policy.GranularityMinutes)
	assert.False(t, policy.WeekdaysOnly)

	assert.Equal(t, int64(120), int64(cfg.Redis.CalendarTTLDuration().Seconds()))
	assert.Equal(t, "*/5 * * * *", cfg.Jobs.TodaySpec)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SALON_AUTH_JWT_SECRET", "from-env")
	t.Setenv("SALON_DATABASE_PASSWORD", "env-password")
	t.Setenv("SALON_SERVER_HTTP_PORT", "9090")
	t.Setenv("SALON_RATE_LIMIT_RATE", "20-H")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "20-H", cfg.RateLimit.Rate)
	assert.Equal(t, "db", cfg.Database.Host)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)

	t.Setenv("SALON_SERVER_HTTP_PORT", "not-a-number")
	_, err = Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Database.DBName = "salon"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "no secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, want: "jwt_secret"},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }, want: "http_port"},
		{name: "bad open hour", mutate: func(c *Config) { c.Booking.OpenHour = 24 }, want: "booking"},
		{name: "bad granularity", mutate: func(c *Config) { c.Booking.GranularityMinutes = 7 }, want: "granularity"},
		{name: "redis store without url", mutate: func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Store = RateLimitStoreRedis
		}, want: "redis.url"},
		{name: "unknown store", mutate: func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Store = "memcached"
		}, want: "rate_limit.store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
