package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_NAME", "PLATFORM_FEE", "MAX_UPLOAD_MB", "UPLOAD_REAPER_SCHEDULE", "SEED_DEMO_DATA", "SENDGRID_API_KEY", "PAYMENT_GATEWAY_URL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "academy.db", cfg.DBName)
	assert.Equal(t, 2.99, cfg.PlatformFee)
	assert.Equal(t, 500, cfg.MaxUploadMB)
	assert.Equal(t, 500*1024*1024, cfg.BodyLimit())
	assert.Empty(t, cfg.UploadReaperSchedule)
	assert.True(t, cfg.SeedDemoData)
	assert.Empty(t, cfg.SendGridAPIKey)
	assert.Empty(t, cfg.PaymentGatewayURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("PLATFORM_FEE", "1.5")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("UPLOAD_REAPER_SCHEDULE", "0 3 * * *")

	cfg := FromEnv()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 1.5, cfg.PlatformFee)
	assert.Equal(t, 10*1024*1024, cfg.BodyLimit())
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, "0 3 * * *", cfg.UploadReaperSchedule)
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")
	t.Setenv("PLATFORM_FEE", "cheap")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg := FromEnv()
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.Equal(t, 2.99, cfg.PlatformFee)
	assert.True(t, cfg.SeedDemoData)
}
