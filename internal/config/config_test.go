package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "cabin_reservation", cfg.Database.DBName)
	assert.Equal(t, 48*time.Hour, cfg.Booking.PendingTTL)
	assert.Equal(t, 10*time.Minute, cfg.Booking.CleanerInterval)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOOKING_PENDING_TTL", "24h")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Booking.PendingTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5433", User: "app", Password: "secret",
		DBName: "cabins", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=cabins sslmode=disable", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: "6380"}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
