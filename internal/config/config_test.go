package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnvs(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "cinema")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "cinema")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestParseDefaults(t *testing.T) {
	setRequiredEnvs(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.DBAutoMigrate)
}

func TestParseOverrides(t *testing.T) {
	setRequiredEnvs(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("RABBITMQ_URL", "amqp://u:p@mq:5672/")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.DBAutoMigrate)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.AMQPURL)
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{
			name: "missing session secret",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("SESSION_SECRET", "")
			},
			wantErr: "SESSION_SECRET",
		},
		{
			name: "missing db host",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("DB_HOST", "")
			},
			wantErr: "DB_HOST",
		},
		{
			name: "bad session ttl",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("SESSION_TTL", "soon")
			},
			wantErr: "SESSION_TTL",
		},
		{
			name: "bcrypt cost out of range",
			setup: func(t *testing.T) {
				setRequiredEnvs(t)
				t.Setenv("BCRYPT_COST", "64")
			},
			wantErr: "BCRYPT_COST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := Parse()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Parse() error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{DBUser: "u", DBPass: "p", DBHost: "db", DBPort: "3306", DBName: "cinema"}
	assert.Equal(t, "u:p@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true&clientFoundRows=true", cfg.DSN())

	cfg.DBPass = ""
	assert.True(t, strings.HasPrefix(cfg.DSN(), "u@tcp(db:3306)/"))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 1, c.RefillTokens)
	assert.Equal(t, 2*time.Second, c.TTL)
}
